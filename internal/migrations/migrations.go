// Package migrations applies the embedded schema for the configured dialect.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Dialect maps a sqlx driver name to a migration directory.
func Dialect(db *sqlx.DB) string {
	if db.DriverName() == "sqlite" {
		return DialectSQLite
	}
	return DialectPostgres
}

// Apply runs every migration of the database dialect that is not yet recorded
// in schema_migrations, in file name order. It returns the applied versions.
func Apply(ctx context.Context, db *sqlx.DB) ([]string, error) {
	dialect := Dialect(db)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	names, err := fs.Glob(files, dialect+"/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var ran []string
	for _, name := range names {
		version := strings.TrimSuffix(name[len(dialect)+1:], ".sql")
		if applied[version] {
			continue
		}
		body, err := files.ReadFile(name)
		if err != nil {
			return ran, err
		}
		if err := applyOne(ctx, db, version, string(body)); err != nil {
			return ran, fmt.Errorf("migration %s: %w", version, err)
		}
		ran = append(ran, version)
	}
	return ran, nil
}

func applyOne(ctx context.Context, db *sqlx.DB, version, body string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(body, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`),
		version, time.Now().UTC(),
	); err != nil {
		return err
	}
	return tx.Commit()
}
