package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// migrate applies the embedded migrations for a dialect and returns the resulting version
func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) (int64, error) {
	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return 0, &StoreError{Message: "failed to open embedded migrations", Cause: err}
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, &StoreError{Message: "failed to create migration provider", Cause: err}
	}
	if _, err := provider.Up(ctx); err != nil {
		return 0, &StoreError{Message: "failed to apply migrations", Cause: err}
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, &StoreError{Message: "failed to read schema version", Cause: err}
	}
	return version, nil
}
