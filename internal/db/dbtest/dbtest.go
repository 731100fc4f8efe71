// Package dbtest provides a migrated, file-backed SQLite database for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"auth-gateway/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func New(t *testing.T) *bun.DB {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "auth.db")

	bdb, err := db.Open(ctx, dsn, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bdb.Close() })

	require.NoError(t, db.Migrate(ctx, bdb))
	return bdb
}
