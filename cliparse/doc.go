// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings, plus the leftover
positional arguments (the subcommand and its flags):

	cfg, rest, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - BaseURL: inspection API base URL (required)
  - DBPath: on-device database path (default: fieldsync.db)

# CLI Flags

	-b   API base URL
	-db  Database path
	-c   YAML config file

# Environment Variables

Flags fall back to environment variables:

	API_BASE_URL     → -b
	DB_PATH          → -db
	FIELDSYNC_CONFIG → -c

A .env file in the working directory is loaded first (godotenv), and a
fieldsync.yaml config file is read when present. Precedence is
CLI flag > environment > config file > default.

# Validation

ParseFlags returns an error if the API base URL is missing.
*/
package cliparse
