// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session_test

import (
	"testing"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/secrets"
	"github.com/farmops/fieldsync/session"
	"github.com/farmops/fieldsync/testutil"
)

func TestLoginLogout(t *testing.T) {
	store := secrets.NewSQLStore(testutil.SetupTestDB(t))
	sess := session.New(store)

	if _, ok := sess.Token(); ok {
		t.Error("fresh session should have no token")
	}

	officer := models.Officer{ID: 3, Name: "Perera", Role: "field_officer", District: "Matale"}
	if err := sess.Login("tok-1", officer); err != nil {
		t.Fatal(err)
	}

	tok, ok := sess.Token()
	if !ok || tok != "tok-1" {
		t.Errorf("expected tok-1, got %q ok=%v", tok, ok)
	}
	got, ok := sess.Officer()
	if !ok || got.Name != "Perera" {
		t.Errorf("expected officer profile, got %+v ok=%v", got, ok)
	}

	if err := sess.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, ok := sess.Token(); ok {
		t.Error("expected no token after logout")
	}
	if _, ok := sess.Officer(); ok {
		t.Error("expected no officer after logout")
	}
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	sess := session.New(secrets.NewSQLStore(testutil.SetupTestDB(t)))
	if err := sess.Login("", models.Officer{}); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestRestartRestoresToken(t *testing.T) {
	store := secrets.NewSQLStore(testutil.SetupTestDB(t))

	sess := session.New(store)
	if err := sess.Login("tok-1", models.Officer{ID: 3, Name: "Perera"}); err != nil {
		t.Fatal(err)
	}

	// A new session over the same store simulates an app restart.
	restored := session.New(store)
	tok, ok := restored.Token()
	if !ok || tok != "tok-1" {
		t.Errorf("expected restored token, got %q ok=%v", tok, ok)
	}
	if _, ok := restored.Officer(); ok {
		t.Error("restored session should have no officer profile until next login")
	}

	if err := restored.Logout(); err != nil {
		t.Fatal(err)
	}
	again := session.New(store)
	if _, ok := again.Token(); ok {
		t.Error("logout should clear the persisted token")
	}
}
