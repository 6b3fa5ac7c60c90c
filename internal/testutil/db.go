// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/fekuna/boutique-catalog-service/internal/migrations"
	"github.com/fekuna/boutique-catalog-service/pkg/database/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated in-memory SQLite database closed with the test.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = migrations.Apply(context.Background(), db)
	require.NoError(t, err)
	return db
}

func StrPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }
