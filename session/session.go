// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"sync"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/secrets"
)

// Session is the read-mostly auth/profile context. It is constructed
// explicitly and passed to the components that need it; Login and Logout
// are the only mutation entry points.
type Session struct {
	store secrets.Store

	mu      sync.RWMutex
	token   string
	officer *models.Officer
}

// New builds a session, restoring any persisted token so an app restart
// does not force a fresh login while the token is still valid.
func New(store secrets.Store) *Session {
	s := &Session{store: store}
	if tok, err := store.Get(secrets.NameAuthToken); err == nil {
		s.token = tok
	}
	return s
}

// Login installs the bearer token and officer profile, persisting the
// token to the secret store.
func (s *Session) Login(token string, officer models.Officer) error {
	if token == "" {
		return errors.New("empty auth token")
	}
	if err := s.store.Set(secrets.NameAuthToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.officer = &officer
	s.mu.Unlock()
	return nil
}

// Logout clears the in-memory session and the persisted token.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.officer = nil
	s.mu.Unlock()

	return s.store.Clear(secrets.NameAuthToken)
}

// Token returns the bearer token, or ok=false when the session has
// expired (no token available).
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Officer returns the logged-in officer's profile, when known. A restored
// session has a token but no profile until the next login.
func (s *Session) Officer() (models.Officer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.officer == nil {
		return models.Officer{}, false
	}
	return *s.officer, true
}
