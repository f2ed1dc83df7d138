package selection

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfiles/chatfiles/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE selection (
  user_id TEXT PRIMARY KEY,
  partner_id TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestSaveAndCurrent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", "bob"))

	got, err := r.Current(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", got)
}

func TestSave_ReplacesPreviousSelection(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", "bob"))
	require.NoError(t, r.Save(ctx, "alice", "carol"))

	got, err := r.Current(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "carol", got)
}

func TestCurrent_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.Current(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestClear(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", "bob"))
	require.NoError(t, r.Clear(ctx, "alice"))

	_, err := r.Current(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// clearing again is fine
	assert.NoError(t, r.Clear(ctx, "alice"))
}
