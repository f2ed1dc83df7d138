// Package clientdb opens the client's sqlite database, applies the embedded
// schema migrations and wires up the repositories.
package clientdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/chatfiles/chatfiles/internal/client/migrations"
	"github.com/chatfiles/chatfiles/internal/client/repositories/files"
	"github.com/chatfiles/chatfiles/internal/client/repositories/selection"
)

// Repositories groups the client-side persistence layers sharing one
// database handle.
type Repositories struct {
	Files     files.Repository
	Selection selection.Repository
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the sqlite database at dsn, migrates the
// schema and returns the handle plus the repositories bound to it. The
// caller owns the handle and closes it on shutdown.
func Open(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repos := &Repositories{
		Files:     files.NewSQLiteRepository(db),
		Selection: selection.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
