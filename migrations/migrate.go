// Package migrations embeds the SQL schema of the blob store and applies it
// with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnknownDialect is returned by [Migrate] for a dialect without embedded
// migrations.
var ErrUnknownDialect = errors.New("unknown migration dialect")

// gooseDialects maps store dialect names to goose dialects. The directory of
// each dialect's migrations is named after the store dialect.
var gooseDialects = map[string]string{
	"postgres": "pgx",
	"sqlite":   "sqlite3",
}

// Migrate applies every pending migration of dialect ("postgres" or
// "sqlite") to db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseDialect, ok := gooseDialects[dialect]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnknownDialect, dialect)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
