// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package secrets_test

import (
	"errors"
	"testing"

	"github.com/farmops/fieldsync/secrets"
	"github.com/farmops/fieldsync/testutil"
)

func TestSetGetClear(t *testing.T) {
	store := secrets.NewSQLStore(testutil.SetupTestDB(t))

	if _, err := store.Get(secrets.NameAuthToken); !errors.Is(err, secrets.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(secrets.NameAuthToken, "tok-1"); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(secrets.NameAuthToken)
	if err != nil {
		t.Fatal(err)
	}
	if got != "tok-1" {
		t.Errorf("expected tok-1, got %s", got)
	}

	// Overwrite
	if err := store.Set(secrets.NameAuthToken, "tok-2"); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Get(secrets.NameAuthToken)
	if got != "tok-2" {
		t.Errorf("expected tok-2 after overwrite, got %s", got)
	}

	if err := store.Clear(secrets.NameAuthToken); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(secrets.NameAuthToken); !errors.Is(err, secrets.ErrNotFound) {
		t.Errorf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestDeviceUUIDIsStable(t *testing.T) {
	store := secrets.NewSQLStore(testutil.SetupTestDB(t))

	first, err := secrets.DeviceUUID(store)
	if err != nil {
		t.Fatal(err)
	}
	if first == "" {
		t.Fatal("expected a minted device UUID")
	}

	second, err := secrets.DeviceUUID(store)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("device UUID changed between calls: %s vs %s", first, second)
	}
}
