// Package storage opens the embedded SQLite database file backing the
// tracker. The handle is constructed once in main and handed to every
// repository that needs it.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fintrack/fintrackd/internal/logger"
)

// schemaVersion is pinned: a database file carrying any other nonzero
// version fails to open, there is no migration path.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	title    TEXT NOT NULL,
	amount   TEXT NOT NULL,
	category TEXT NOT NULL,
	date     TEXT NOT NULL,
	user     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budgets (
	username TEXT PRIMARY KEY,
	amount   TEXT NOT NULL DEFAULT '0'
);

CREATE TABLE IF NOT EXISTS preferences (
	username        TEXT PRIMARY KEY,
	reminder_hour   INTEGER NOT NULL DEFAULT -1,
	reminder_minute INTEGER NOT NULL DEFAULT -1,
	currency        TEXT NOT NULL DEFAULT '$'
);

CREATE TABLE IF NOT EXISTS feedback (
	id       TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	comment  TEXT NOT NULL
);
`

// Open opens (or creates) the SQLite database at path and bootstraps the
// schema. Monetary amounts are stored as decimal text to keep them exact.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	var version int
	if err := db.GetContext(ctx, &version, `PRAGMA user_version`); err != nil {
		db.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if version != 0 && version != schemaVersion {
		db.Close()
		return nil, fmt.Errorf("incompatible schema version %d (want %d)", version, schemaVersion)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("pin schema version: %w", err)
	}

	logger.Log.Infow("database opened", "path", path, "schema_version", schemaVersion)
	return db, nil
}
