// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package secrets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("secret not found")

// Well-known secret names.
const (
	NameAuthToken  = "auth_token"
	NameDeviceUUID = "device_uuid"
)

// Store is an opaque key-value secret store. The SQLite-backed
// implementation below is the default; a platform keychain can satisfy
// the same interface.
type Store interface {
	Get(name string) (string, error)
	Set(name, value string) error
	Clear(name string) error
}

// SQLStore keeps secrets in the on-device database's secret table.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM secret WHERE name = $1`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret %q: %w", name, err)
	}
	return value, nil
}

func (s *SQLStore) Set(name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO secret (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to write secret %q: %w", name, err)
	}
	return nil
}

func (s *SQLStore) Clear(name string) error {
	_, err := s.db.Exec(`DELETE FROM secret WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to clear secret %q: %w", name, err)
	}
	return nil
}

// DeviceUUID returns this install's stable device identifier, minting and
// persisting one on first use.
func DeviceUUID(s Store) (string, error) {
	id, err := s.Get(NameDeviceUUID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	id = uuid.NewString()
	if err := s.Set(NameDeviceUUID, id); err != nil {
		return "", err
	}
	return id, nil
}
