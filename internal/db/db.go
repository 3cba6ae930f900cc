// Package db records formatting runs in PostgreSQL or SQLite.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store persists run history. GetRun returns (nil, nil) for an unknown id.
type Store interface {
	SaveRun(ctx context.Context, run *FormatRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*FormatRun, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]FormatRun, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error
	Close() error
}

// Open picks a backend from the DSN: postgres:// and postgresql:// connect to
// PostgreSQL, sqlite://path or a bare file path opens SQLite. Migrations run on open.
func Open(ctx context.Context, dsn string) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, &StoreError{Message: "database URL is empty"}
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return Connect(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.Contains(dsn, "://"):
		return nil, &StoreError{Message: fmt.Sprintf("unsupported database scheme in %q", redact(dsn))}
	default:
		return OpenSQLite(ctx, dsn)
	}
}

// redact hides credentials in a DSN for error messages
func redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	return scheme + "://" + rest
}

// StoreError represents a run-history storage failure
type StoreError struct {
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
