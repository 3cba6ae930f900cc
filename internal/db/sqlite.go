package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteTime sorts lexicographically in creation order
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps run history in a local SQLite file
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (creating when needed) the database at path and applies migrations.
// ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &StoreError{Message: "sqlite path is empty"}
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, &StoreError{Message: "failed to create data directory", Cause: err}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StoreError{Message: "failed to open database", Cause: err}
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &StoreError{Message: "failed to ping database", Cause: err}
	}
	if _, err := migrate(ctx, db, goose.DialectSQLite3, "migrations/sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts or replaces a run record
func (s *SQLiteStore) SaveRun(ctx context.Context, run *FormatRun) error {
	if err := run.prepare(); err != nil {
		return err
	}
	counts, err := json.Marshal(run.SectionCounts)
	if err != nil {
		return fmt.Errorf("failed to marshal section counts: %w", err)
	}
	var document *string
	if len(run.Document) > 0 {
		doc := string(run.Document)
		document = &doc
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO format_runs (`+runColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     source_name = excluded.source_name, candidate_name = excluded.candidate_name,
		     format = excluded.format, status = excluded.status,
		     error_stage = excluded.error_stage, error_message = excluded.error_message,
		     section_counts = excluded.section_counts, entry_count = excluded.entry_count,
		     document = excluded.document`,
		run.ID.String(), run.SourceName, run.CandidateName, run.Format, run.Status,
		nullable(run.ErrorStage), nullable(run.ErrorMessage), string(counts),
		run.EntryCount, document, run.CreatedAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return &StoreError{Message: "failed to save run " + run.ID.String(), Cause: err}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*FormatRun, error) {
	run, err := scanSQLiteRun(s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM format_runs WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &StoreError{Message: "failed to get run", Cause: err}
	}
	return run, nil
}

// ListRuns retrieves recent runs, newest first
func (s *SQLiteStore) ListRuns(ctx context.Context, filters RunFilters) ([]FormatRun, error) {
	var where []string
	args := []any{}

	if filters.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filters.Status)
	}
	if filters.Candidate != "" {
		where = append(where, "candidate_name LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(filters.Candidate)+"%")
	}

	query := `SELECT ` + runColumns + ` FROM format_runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, filters.limit())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StoreError{Message: "failed to list runs", Cause: err}
	}
	defer rows.Close()

	runs := []FormatRun{}
	for rows.Next() {
		run, err := scanSQLiteRun(rows)
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
func (s *SQLiteStore) DeleteRun(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM format_runs WHERE id = ?`, id.String())
	if err != nil {
		return &StoreError{Message: "failed to delete run", Cause: err}
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &StoreError{Message: "run not found: " + id.String()}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRun(row rowScanner) (*FormatRun, error) {
	var run FormatRun
	var id, counts, createdAt string
	var errorStage, errorMessage, document sql.NullString

	err := row.Scan(&id, &run.SourceName, &run.CandidateName, &run.Format, &run.Status,
		&errorStage, &errorMessage, &counts, &run.EntryCount, &document, &createdAt)
	if err != nil {
		return nil, err
	}

	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	if run.CreatedAt, err = time.Parse(sqliteTime, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	run.ErrorStage = errorStage.String
	run.ErrorMessage = errorMessage.String
	if err := json.Unmarshal([]byte(counts), &run.SectionCounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal section counts: %w", err)
	}
	if document.Valid && document.String != "" {
		run.Document = json.RawMessage(document.String)
	}
	return &run, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
