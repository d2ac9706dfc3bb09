package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finance.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.GetContext(ctx, &version, `PRAGMA user_version`))
	assert.Equal(t, schemaVersion, version)

	for _, table := range []string{"users", "transactions", "budgets", "preferences", "feedback"} {
		var count int
		err := db.GetContext(ctx, &count,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s missing", table)
	}
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finance.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO users (username, email, password_hash) VALUES ('alice', 'a@example.com', 'h')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Data written before a restart is still there after reopening.
	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 1, count)
}

func TestOpen_IncompatibleSchemaVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "finance.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `PRAGMA user_version = 7`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(ctx, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible schema version")
}
