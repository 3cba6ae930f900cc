package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/server"
	"github.com/jonathan/resume-formatter/internal/server/ratelimit"
)

type serveFlags struct {
	port      int
	dbURL     string
	style     string
	strict    bool
	subtitles string
}

func newServeCmd(a *app) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start an HTTP server that formats uploaded résumés.

Run history is recorded when --db-url (or DATABASE_URL) is set. Bearer-token
authentication is enabled when JWT_SECRET (or jwt_secret in the config file) is set;
API clients listed in API_KEYS exchange their key for a token at POST /v1/auth/token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd, f)
		},
	}

	cmd.Flags().IntVar(&f.port, "port", 8080, "Port to listen on")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "Run history database (postgres:// or sqlite://; defaults to DATABASE_URL)")
	cmd.Flags().StringVar(&f.style, "style", "", "Path to a style file")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Default strict mode for requests")
	cmd.Flags().StringVar(&f.subtitles, "subtitles", "", "Default subtitle detection: heuristic, always or never")
	return cmd
}

func (a *app) runServe(cmd *cobra.Command, f *serveFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	style, err := a.loadStyle(cmd, f.style)
	if err != nil {
		return err
	}
	mode, err := a.subtitleMode(cmd, f.subtitles)
	if err != nil {
		return err
	}

	port := f.port
	if !cmd.Flags().Changed("port") && a.cfg.Port > 0 {
		port = a.cfg.Port
	}

	cfg := server.Config{
		Port:      port,
		Style:     style,
		Strict:    a.strict(cmd, f.strict),
		Subtitles: mode,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    &a.logger,
	}

	store, err := a.openStore(ctx, a.databaseURL(cmd, f.dbURL))
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		cfg.Store = store
	} else {
		a.logger.Warn().Msg("no database configured; run history is disabled")
	}

	if os.Getenv("JWT_SECRET") != "" || a.cfg.JWTSecret != "" {
		jwtConfig, err := config.NewJWTConfig(a.cfg.JWTSecret)
		if err != nil {
			return fmt.Errorf("failed to create JWT config: %w", err)
		}
		apiKeys, err := config.NewAPIKeyConfig()
		if err != nil {
			return fmt.Errorf("failed to create API key config: %w", err)
		}
		cfg.JWT = jwtConfig
		cfg.APIKeys = apiKeys
		a.logger.Info().Int("clients", len(apiKeys.Clients)).Msg("bearer authentication enabled")
	}

	return server.New(cfg).Start(ctx)
}
