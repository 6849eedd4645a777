package client

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	localmigrations "github.com/dmitrijs2005/qrcontacts/internal/client/migrations"
	remotemigrations "github.com/dmitrijs2005/qrcontacts/internal/client/migrations/postgres"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dialect string) error {
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// RunMigrations applies the embedded SQLite migrations of the local cache.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, localmigrations.Migrations, "sqlite3")
}

// RunRemoteMigrations applies the Postgres schema used by PostgresClient.
func RunRemoteMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, remotemigrations.Migrations, "pgx")
}

// InitDatabase opens the local SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
