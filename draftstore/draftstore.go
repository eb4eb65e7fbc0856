// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draftstore

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/farmops/fieldsync/models"
)

// Store persists section drafts keyed by (requestID, section). It is a
// best-effort cache: Get and Put never fail loudly, because a broken local
// cache must not block form entry or lose keystrokes already on screen.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns the draft for (requestID, section), or ok=false when no
// draft exists. Read failures are logged and reported as "no draft".
func (s *Store) Get(requestID int64, section string) (models.DraftRecord, bool) {
	var (
		payload  []byte
		updated  time.Time
		syncedAt sql.NullTime
	)
	err := s.db.QueryRow(`
		SELECT fields, updated_at, synced_at
		FROM draft
		WHERE request_id = $1 AND section = $2
	`, requestID, section).Scan(&payload, &updated, &syncedAt)

	if err == sql.ErrNoRows {
		return models.DraftRecord{}, false
	}
	if err != nil {
		slog.Warn("draft read failed", "request_id", requestID, "section", section, "error", err)
		return models.DraftRecord{}, false
	}

	var fields models.Fields
	if err := json.Unmarshal(payload, &fields); err != nil {
		slog.Warn("draft payload corrupt", "request_id", requestID, "section", section, "error", err)
		return models.DraftRecord{}, false
	}

	rec := models.DraftRecord{
		RequestID: requestID,
		Section:   section,
		Fields:    fields,
		UpdatedAt: updated,
	}
	if syncedAt.Valid {
		t := syncedAt.Time
		rec.SyncedAt = &t
	}
	return rec, true
}

// Put overwrites the draft payload for (requestID, section), creating the
// row on first edit. The previous synced_at stamp survives; staleness is
// derived by comparing it against updated_at. Write failures are logged
// and swallowed.
func (s *Store) Put(requestID int64, section string, fields models.Fields) {
	payload, err := json.Marshal(fields)
	if err != nil {
		slog.Warn("draft encode failed", "request_id", requestID, "section", section, "error", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO draft (request_id, section, fields, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (request_id, section)
		DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at
	`, requestID, section, payload, s.now().UTC())

	if err != nil {
		slog.Warn("draft write failed", "request_id", requestID, "section", section, "error", err)
	}
}

// MarkSynced records a successful remote save for the draft. Best-effort
// like Put: a failure here only delays the pending-resync bookkeeping.
func (s *Store) MarkSynced(requestID int64, section string) {
	_, err := s.db.Exec(`
		UPDATE draft SET synced_at = $1
		WHERE request_id = $2 AND section = $3
	`, s.now().UTC(), requestID, section)

	if err != nil {
		slog.Warn("draft sync stamp failed", "request_id", requestID, "section", section, "error", err)
	}
}

// List returns every draft stored for a request, ordered by section name.
// Unlike Get/Put this is a reporting path and returns real errors.
func (s *Store) List(requestID int64) ([]models.DraftRecord, error) {
	rows, err := s.db.Query(`
		SELECT section, fields, updated_at, synced_at
		FROM draft
		WHERE request_id = $1
		ORDER BY section
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanDrafts(requestID, rows)
}

// ListPending returns the drafts for a request whose local edits have not
// been accepted by the backend.
func (s *Store) ListPending(requestID int64) ([]models.DraftRecord, error) {
	rows, err := s.db.Query(`
		SELECT section, fields, updated_at, synced_at
		FROM draft
		WHERE request_id = $1 AND (synced_at IS NULL OR synced_at < updated_at)
		ORDER BY section
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanDrafts(requestID, rows)
}

// PendingRequests returns the distinct request ids that have at least one
// dirty draft.
func (s *Store) PendingRequests() ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT request_id
		FROM draft
		WHERE synced_at IS NULL OR synced_at < updated_at
		ORDER BY request_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) scanDrafts(requestID int64, rows *sql.Rows) ([]models.DraftRecord, error) {
	drafts := []models.DraftRecord{}
	for rows.Next() {
		var (
			rec      models.DraftRecord
			payload  []byte
			syncedAt sql.NullTime
		)
		rec.RequestID = requestID
		if err := rows.Scan(&rec.Section, &payload, &rec.UpdatedAt, &syncedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &rec.Fields); err != nil {
			// One corrupt row should not hide the rest.
			slog.Warn("draft payload corrupt", "request_id", requestID, "section", rec.Section, "error", err)
			continue
		}
		if syncedAt.Valid {
			t := syncedAt.Time
			rec.SyncedAt = &t
		}
		drafts = append(drafts, rec)
	}
	return drafts, rows.Err()
}
