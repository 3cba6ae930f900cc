package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/pipeline"
	"github.com/jonathan/resume-formatter/internal/watch"
)

type watchFlags struct {
	outDir    string
	format    string
	style     string
	strict    bool
	subtitles string
	dbURL     string
	initial   bool
}

func newWatchCmd(a *app) *cobra.Command {
	f := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Format résumés as they are dropped into a directory",
		Long: `Watch DIR and format every supported file that is created or rewritten there,
writing the result into --out. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, f, args[0])
		},
	}

	cmd.Flags().StringVarP(&f.outDir, "out", "o", "formatted", "Output directory (must differ from DIR)")
	cmd.Flags().StringVarP(&f.format, "format", "f", export.DefaultFormat, "Output format: docx, pdf, tex, json, txt")
	cmd.Flags().StringVar(&f.style, "style", "", "Path to a style file")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on date lines that cannot be attached to a header")
	cmd.Flags().StringVar(&f.subtitles, "subtitles", "", "Subtitle detection: heuristic, always or never")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "Record runs in this database (defaults to DATABASE_URL)")
	cmd.Flags().BoolVar(&f.initial, "initial", false, "Also format files already in DIR")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, f *watchFlags, dir string) error {
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
	writer, err := export.ForFormat(stringFlag(cmd, "format", f.format, a.cfg.Format))
	if err != nil {
		return err
	}

	store, err := a.openStore(ctx, a.databaseURL(cmd, f.dbURL))
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	w := &watch.Watcher{
		Dir:    dir,
		OutDir: stringFlag(cmd, "out", f.outDir, a.cfg.OutputDir),
		Writer: writer,
		Options: pipeline.Options{
			Style:     style,
			Strict:    a.strict(cmd, f.strict),
			Subtitles: mode,
			Logger:    &a.logger,
		},
		Store:   store,
		Initial: f.initial,
		Logger:  a.logger,
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	return w.Run(ctx, func(o watch.Outcome) {
		if o.Err != nil {
			printer.PrintError(o.Path, o.Err)
			return
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), o.Output)
		if a.verbose {
			printer.PrintResult(o.Result)
		}
	})
}
