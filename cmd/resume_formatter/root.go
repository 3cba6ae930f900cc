package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/experience"
	"github.com/jonathan/resume-formatter/internal/logging"
)

// app holds state shared by every command of one invocation
type app struct {
	configPath string
	verbose    bool
	logJSON    bool

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "resume_formatter",
		Short: "Reformat résumés into a fixed house style",
		Long: `resume_formatter turns résumés in heterogeneous layouts (PDF, DOCX, HTML, XLSX, text)
into one consistent document: centered name, fixed section headings, bulleted lines and
right-aligned experience dates.

Configuration can be loaded from a JSON, YAML or TOML file using --config. Command-line
flags override config file values.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file (.json, .yaml or .toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print detailed debug information")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON instead of console text")

	root.AddCommand(
		newFormatCmd(a),
		newParseCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
		newRunsCmd(a),
		newTokenCmd(a),
		newStyleCmd(a),
		newValidateCmd(a),
	)
	return root
}

// setup loads the config file and installs the logger
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		a.cfg = *loaded
	}
	if !cmd.Flags().Changed("verbose") && a.cfg.Verbose {
		a.verbose = true
	}

	a.logger = logging.Setup(cmd.ErrOrStderr(), a.verbose, a.logJSON)
	if a.configPath != "" {
		a.logger.Debug().Str("path", a.configPath).Msg("loaded config")
	}
	return nil
}

// stringFlag returns the flag value when set on the command line, else the config value
func stringFlag(cmd *cobra.Command, name, flagValue, configValue string) string {
	if cmd.Flags().Changed(name) || configValue == "" {
		return flagValue
	}
	return configValue
}

// databaseURL resolves --db-url, then the config file, then DATABASE_URL
func (a *app) databaseURL(cmd *cobra.Command, flagValue string) string {
	if url := stringFlag(cmd, "db-url", flagValue, a.cfg.DatabaseURL); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// openStore opens run history, returning nil when no database is configured
func (a *app) openStore(ctx context.Context, url string) (db.Store, error) {
	if url == "" {
		return nil, nil
	}
	store, err := db.Open(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

// loadStyle loads the style named by flag or config, or the default style
func (a *app) loadStyle(cmd *cobra.Command, flagValue string) (config.Style, error) {
	return config.LoadStyle(stringFlag(cmd, "style", flagValue, a.cfg.Style))
}

// subtitleMode parses the --subtitles flag (or config); empty means heuristic
func (a *app) subtitleMode(cmd *cobra.Command, flagValue string) (experience.SubtitleMode, error) {
	value := strings.TrimSpace(stringFlag(cmd, "subtitles", flagValue, a.cfg.Subtitles))
	if value == "" {
		return experience.SubtitleHeuristic, nil
	}
	return experience.ParseSubtitleMode(value)
}

// strict reports --strict, falling back to the config file
func (a *app) strict(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("strict") {
		return flagValue
	}
	return flagValue || a.cfg.Strict
}
