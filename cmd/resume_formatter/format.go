package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/export"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/pipeline"
)

type formatFlags struct {
	outDir    string
	format    string
	style     string
	strict    bool
	subtitles string
	jobs      int
	dbURL     string
}

func newFormatCmd(a *app) *cobra.Command {
	f := &formatFlags{}
	cmd := &cobra.Command{
		Use:   "format FILE...",
		Short: "Format one or more résumés",
		Long: `Extract, classify and render each FILE (a path or an http(s) URL), writing "<Candidate Name>.<ext>" into --out.
Files are processed concurrently (--jobs); one failing file does not stop the others.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFormat(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.outDir, "out", "o", ".", "Output directory")
	cmd.Flags().StringVarP(&f.format, "format", "f", export.DefaultFormat, "Output format: docx, pdf, tex, json, txt")
	cmd.Flags().StringVar(&f.style, "style", "", "Path to a style file (defaults to the built-in style)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail on date lines that cannot be attached to a header")
	cmd.Flags().StringVar(&f.subtitles, "subtitles", "", "Subtitle detection: heuristic, always or never")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Files formatted concurrently (0 = number of CPUs)")
	cmd.Flags().StringVar(&f.dbURL, "db-url", "", "Record runs in this database (postgres:// or sqlite://; defaults to DATABASE_URL)")
	return cmd
}

func (a *app) runFormat(cmd *cobra.Command, f *formatFlags, paths []string) error {
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
	outDir := stringFlag(cmd, "out", f.outDir, a.cfg.OutputDir)
	jobs := f.jobs
	if !cmd.Flags().Changed("jobs") && a.cfg.Jobs > 0 {
		jobs = a.cfg.Jobs
	}

	store, err := a.openStore(ctx, a.databaseURL(cmd, f.dbURL))
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	opts := pipeline.Options{
		Style:     style,
		Strict:    a.strict(cmd, f.strict),
		Subtitles: mode,
		Logger:    &a.logger,
	}

	a.logger.Debug().Int("files", len(paths)).Str("format", writer.Extension()).Msg("formatting")
	results := pipeline.FormatFiles(ctx, paths, opts, jobs)

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()
	for i := range results {
		r := &results[i]
		if r.Err == nil {
			var path string
			path, r.Err = pipeline.Export(r.Result, outDir, writer, style)
			if r.Err == nil {
				_, _ = fmt.Fprintln(out, path)
			}
		}

		a.record(ctx, store, r, writer.Extension())
		if r.Err != nil {
			printer.PrintError(r.Path, r.Err)
			continue
		}
		if a.verbose {
			printer.PrintResult(r.Result)
		}
	}

	if len(results) > 1 || a.verbose {
		printer.PrintBatch(results)
	}
	if failed := pipeline.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

func (a *app) record(ctx context.Context, store db.Store, r *pipeline.FileResult, format string) {
	if store == nil {
		return
	}
	run := pipeline.NewRecord(filepath.Base(r.Path), format, r.Result, r.Err)
	if err := store.SaveRun(ctx, run); err != nil {
		a.logger.Warn().Err(err).Str("file", r.Path).Msg("failed to record run")
	}
}
