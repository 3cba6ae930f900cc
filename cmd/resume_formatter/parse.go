package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/schemas"
	"github.com/jonathan/resume-formatter/internal/types"
	schemafiles "github.com/jonathan/resume-formatter/schemas"
)

type parseFlags struct {
	outFile   string
	strict    bool
	subtitles string
	document  bool
}

// parseOutput is the JSON printed by the parse command
type parseOutput struct {
	*pipeline.Result
	Document *types.FormattedDocument `json:"document,omitempty"`
}

func newParseCmd(a *app) *cobra.Command {
	f := &parseFlags{}
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the parsed résumé model as JSON",
		Long: `Parse FILE (an http(s) URL, or "-" for plain text on stdin) into candidate, sections and experience
entries, and print the result as JSON that validates against parse_result.schema.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, f, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.outFile, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on date lines that cannot be attached to a header")
	cmd.Flags().StringVar(&f.subtitles, "subtitles", "", "Subtitle detection: heuristic, always or never")
	cmd.Flags().BoolVar(&f.document, "document", false, "Include the rendered document tree")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, f *parseFlags, input string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	mode, err := a.subtitleMode(cmd, f.subtitles)
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Strict:    a.strict(cmd, f.strict),
		Subtitles: mode,
		Logger:    &a.logger,
	}

	var res *pipeline.Result
	if input == "-" {
		data, rerr := io.ReadAll(cmd.InOrStdin())
		if rerr != nil {
			return fmt.Errorf("failed to read stdin: %w", rerr)
		}
		opts.Source, opts.Format = "stdin", "txt"
		res, err = pipeline.Format(ctx, string(data), opts)
	} else {
		res, err = pipeline.FormatSource(ctx, input, opts)
	}
	if err != nil {
		return err
	}

	output := parseOutput{Result: res}
	if f.document {
		output.Document = res.Document
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// Validate against schema
	if err := schemas.Validate(schemafiles.ParseResult, jsonBytes); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("generated JSON does not validate against schema: %w", err)
		}
		a.logger.Warn().Err(err).Msg("could not validate output against schema")
	}

	if f.outFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}
	if err := os.WriteFile(f.outFile, append(jsonBytes, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	a.logger.Info().Str("path", f.outFile).Msg("wrote parse result")
	return nil
}
