package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/db"
	"github.com/jonathan/resume-formatter/internal/observability"
)

type runsFlags struct {
	dbURL     string
	limit     int
	status    string
	candidate string
	asJSON    bool
}

func newRunsCmd(a *app) *cobra.Command {
	f := &runsFlags{}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded formatting runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runListRuns(cmd, f)
		},
	}

	cmd.PersistentFlags().StringVar(&f.dbURL, "db-url", "", "Run history database (defaults to DATABASE_URL)")
	cmd.PersistentFlags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of a summary")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", db.DefaultListLimit, "Maximum runs to list")
	cmd.Flags().StringVar(&f.status, "status", "", "Only runs with this status (succeeded or failed)")
	cmd.Flags().StringVar(&f.candidate, "candidate", "", "Only runs whose candidate name contains this text")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show ID",
			Short: "Show one recorded run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runShowRun(cmd, f, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete one recorded run",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runDeleteRun(cmd, f, args[0])
			},
		},
	)
	return cmd
}

// historyStore opens the run history or fails when none is configured
func (a *app) historyStore(cmd *cobra.Command, f *runsFlags) (context.Context, db.Store, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	url := a.databaseURL(cmd, f.dbURL)
	if url == "" {
		return nil, nil, fmt.Errorf("database URL is required (use --db-url, database_url in the config file, or DATABASE_URL)")
	}
	store, err := a.openStore(ctx, url)
	return ctx, store, err
}

func (a *app) runListRuns(cmd *cobra.Command, f *runsFlags) error {
	ctx, store, err := a.historyStore(cmd, f)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(ctx, db.RunFilters{Status: f.status, Candidate: f.candidate, Limit: f.limit})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if f.asJSON {
		if runs == nil {
			runs = []db.FormatRun{}
		}
		return printJSON(cmd, runs)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRuns(runs)
	return nil
}

func (a *app) runShowRun(cmd *cobra.Command, f *runsFlags, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}
	ctx, store, err := a.historyStore(cmd, f)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run not found: %s", id)
	}

	if f.asJSON {
		return printJSON(cmd, run)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRuns([]db.FormatRun{*run})
	return nil
}

func (a *app) runDeleteRun(cmd *cobra.Command, f *runsFlags, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}
	ctx, store, err := a.historyStore(cmd, f)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteRun(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return err
}
