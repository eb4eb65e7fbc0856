// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/farmops/fieldsync/db"
	"github.com/farmops/fieldsync/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One :memory: database per connection otherwise.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// TestContext returns a valid wizard entry context.
func TestContext() models.RequestContext {
	return models.RequestContext{RequestID: 42, RequestNumber: "REQ-2025-0042"}
}

// SeedDraft writes a draft row directly, bypassing the store.
func SeedDraft(t *testing.T, conn *sql.DB, requestID int64, section string, fields models.Fields) {
	t.Helper()

	payload, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("Failed to encode draft fields: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO draft (request_id, section, fields, updated_at)
		VALUES ($1, $2, $3, $4)
	`, requestID, section, payload, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to seed draft: %v", err)
	}
}

// StaticTokens is a TokenSource with a fixed answer.
type StaticTokens struct {
	Value string
}

func (s StaticTokens) Token() (string, bool) {
	return s.Value, s.Value != ""
}

// FakeBackend is an httptest server speaking the inspection envelope. It
// records every save body and serves canned load data.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	saves    []map[string]interface{}
	loadData map[string]map[string]interface{} // tableName -> data
	failWith string                            // when set, saves answer success:false
}

// NewFakeBackend starts the fake server; it stops with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{loadData: map[string]map[string]interface{}{}}

	mux := http.NewServeMux()
	// Go 1.21's ServeMux has no method patterns; enforce the method here.
	mux.HandleFunc("/inspection/save", requireMethod(http.MethodPost, f.handleSave))
	mux.HandleFunc("/inspection/get", requireMethod(http.MethodGet, f.handleGet))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

// URL returns the backend's base URL.
func (f *FakeBackend) URL() string { return f.Server.URL }

// FailSaves makes subsequent saves answer success:false with a message.
func (f *FakeBackend) FailSaves(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = message
}

// SetLoadData installs the data object served for a table.
func (f *FakeBackend) SetLoadData(tableName string, data map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadData[tableName] = data
}

// Saves returns the recorded save bodies.
func (f *FakeBackend) Saves() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]interface{}, len(f.saves))
	copy(out, f.saves)
	return out
}

func (f *FakeBackend) handleSave(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.saves = append(f.saves, body)
	fail := f.failWith
	seen := 0
	table, _ := body["tableName"].(string)
	for _, s := range f.saves {
		if tn, _ := s["tableName"].(string); tn == table {
			seen++
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail != "" {
		json.NewEncoder(w).Encode(models.SaveResponse{Success: false, Message: fail})
		return
	}

	op := "insert"
	if seen > 1 {
		op = "update"
	}
	json.NewEncoder(w).Encode(models.SaveResponse{Success: true, Operation: op})
}

func (f *FakeBackend) handleGet(w http.ResponseWriter, r *http.Request) {
	table := r.URL.Query().Get("tableName")

	f.mu.Lock()
	data, ok := f.loadData[table]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		json.NewEncoder(w).Encode(models.LoadResponse{Success: false})
		return
	}
	json.NewEncoder(w).Encode(models.LoadResponse{Success: true, Data: data})
}
