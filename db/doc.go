// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles the on-device SQLite database.

# Opening

Open creates the database file (and its parent directory) on first use and
ensures the schema exists:

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("database open failed", "error", err)
		os.Exit(1)
	}

# Schema Creation

CreateSchema initializes all required tables. Safe to call multiple
times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - draft: One section draft per (request_id, section). The fields column
    holds the section's form state as a JSON object. synced_at is NULL
    until the backend accepts the section, making pending-resync rows
    cheap to find.
  - secret: Opaque name/value secrets (bearer token, device id). Accessed
    only through the secrets package.

The driver is modernc.org/sqlite (pure Go, no cgo), which matters for the
cross-compiled mobile targets this store serves.
*/
package db
