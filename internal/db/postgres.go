package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const runColumns = `id, source_name, candidate_name, format, status, error_stage, error_message,
	section_counts, entry_count, document, created_at`

// PostgresStore keeps run history in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// Connect establishes a connection pool and applies migrations
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Message: "failed to connect to database", Cause: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Message: "failed to ping database", Cause: err}
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if _, err := migrate(ctx, sqlDB, goose.DialectPostgres, "migrations/postgres"); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// SaveRun inserts or replaces a run record
func (s *PostgresStore) SaveRun(ctx context.Context, run *FormatRun) error {
	if err := run.prepare(); err != nil {
		return err
	}
	counts, err := json.Marshal(run.SectionCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal section counts: %w", err)
	}
	var document []byte
	if len(run.Document) > 0 {
		document = run.Document
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO format_runs (`+runColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
		     source_name = $2, candidate_name = $3, format = $4, status = $5,
		     error_stage = $6, error_message = $7, section_counts = $8,
		     entry_count = $9, document = $10`,
		run.ID, run.SourceName, run.CandidateName, run.Format, run.Status,
		nullable(run.ErrorStage), nullable(run.ErrorMessage), counts,
		run.EntryCount, document, run.CreatedAt,
	)
	if err != nil {
		return &StoreError{Message: "failed to save run " + run.ID.String(), Cause: err}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*FormatRun, error) {
	run, err := scanPostgresRun(s.pool.QueryRow(ctx,
		`SELECT `+runColumns+` FROM format_runs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &StoreError{Message: "failed to get run", Cause: err}
	}
	return run, nil
}

// ListRuns retrieves recent runs, newest first
func (s *PostgresStore) ListRuns(ctx context.Context, filters RunFilters) ([]FormatRun, error) {
	query := `SELECT ` + runColumns + ` FROM format_runs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.Candidate != "" {
		query += fmt.Sprintf(" AND candidate_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.Candidate+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.limit())

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Message: "failed to list runs", Cause: err}
	}
	defer rows.Close()

	runs := []FormatRun{}
	for rows.Next() {
		run, err := scanPostgresRun(rows)
		if err != nil {
			return nil, &StoreError{Message: "failed to scan run", Cause: err}
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to list runs", Cause: err}
	}
	return runs, nil
}

// DeleteRun deletes a run
func (s *PostgresStore) DeleteRun(ctx context.Context, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `DELETE FROM format_runs WHERE id = $1`, id)
	if err != nil {
		return &StoreError{Message: "failed to delete run", Cause: err}
	}
	if result.RowsAffected() == 0 {
		return &StoreError{Message: "run not found: " + id.String()}
	}
	return nil
}

func scanPostgresRun(row pgx.Row) (*FormatRun, error) {
	var run FormatRun
	var errorStage, errorMessage *string
	var counts, document []byte

	err := row.Scan(&run.ID, &run.SourceName, &run.CandidateName, &run.Format, &run.Status,
		&errorStage, &errorMessage, &counts, &run.EntryCount, &document, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	run.ErrorStage = deref(errorStage)
	run.ErrorMessage = deref(errorMessage)
	if len(counts) > 0 {
		if err := json.Unmarshal(counts, &run.SectionCounts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal section counts: %w", err)
		}
	}
	if len(document) > 0 {
		run.Document = json.RawMessage(document)
	}
	return &run, nil
}
