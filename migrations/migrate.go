// Package migrations carries the embedded schema and applies it with goose
// at startup, so a deployed binary needs no migration files on disk.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var schema embed.FS

// Migrate brings the database schema up to date. It is idempotent: goose
// tracks applied versions in its own table and skips them on the next run.
func Migrate(db *sql.DB) error {
	if db == nil {
		return errors.New("migrate: nil database handle")
	}

	goose.SetBaseFS(schema)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("migrate: set dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate: apply schema: %w", err)
	}

	return nil
}
