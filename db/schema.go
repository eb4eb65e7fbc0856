// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the on-device database file and
// ensures the schema exists. The parent directory is created as needed.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Section drafts, one row per (request, section)
CREATE TABLE IF NOT EXISTS draft (
    request_id INTEGER NOT NULL,
    section    TEXT NOT NULL,
    fields     TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    synced_at  TIMESTAMP,
    PRIMARY KEY (request_id, section)
);

CREATE INDEX IF NOT EXISTS idx_draft_request ON draft(request_id);
CREATE INDEX IF NOT EXISTS idx_draft_pending ON draft(request_id) WHERE synced_at IS NULL;

-- Opaque secrets (bearer token, device id)
CREATE TABLE IF NOT EXISTS secret (
    name  TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
