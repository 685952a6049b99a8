package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// openTestDB opens a fresh database in a temp dir with all tables created.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, NewComicRepository(db).Init(ctx))
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewWishListRepository(db).Init(ctx))
	require.NoError(t, NewTokenRepository(db).Init(ctx))

	return db
}
