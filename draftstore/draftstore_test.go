// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draftstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/testutil"
)

func sampleFields() models.Fields {
	return models.Fields{
		"farmer_name": models.Text("Kumara Perera"),
		"land_extent": models.Text("2.5"),
		"has_risk":    models.YesNo(false),
		"crops":       models.List([]string{"paddy", "maize"}),
		"score":       models.Number(7),
	}
}

func TestRoundTrip(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())

	rec, ok := store.Get(7, models.SectionLandInfo)
	if !ok {
		t.Fatal("expected draft after Put")
	}
	if diff := cmp.Diff(sampleFields(), rec.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if !rec.Dirty() {
		t.Error("fresh draft should be dirty")
	}
}

func TestGetAbsent(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	if _, ok := store.Get(7, models.SectionLandInfo); ok {
		t.Error("expected no draft")
	}
}

func TestPutOverwrites(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())
	store.Put(7, models.SectionLandInfo, models.Fields{"land_extent": models.Text("3")})

	rec, ok := store.Get(7, models.SectionLandInfo)
	if !ok {
		t.Fatal("expected draft")
	}
	if len(rec.Fields) != 1 {
		t.Errorf("expected full overwrite, got %d fields", len(rec.Fields))
	}
	if rec.Fields["land_extent"].Text != "3" {
		t.Errorf("expected overwritten value, got %q", rec.Fields["land_extent"].Text)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())
	store.Put(7, models.SectionEconomical, models.Fields{"annual_income": models.Text("90000")})
	store.Put(8, models.SectionLandInfo, models.Fields{"land_extent": models.Text("1")})

	rec, _ := store.Get(7, models.SectionLandInfo)
	if len(rec.Fields) != len(sampleFields()) {
		t.Error("neighboring keys leaked into each other")
	}
}

func TestMarkSyncedClearsPending(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())
	store.Put(7, models.SectionEconomical, models.Fields{"annual_income": models.Text("90000")})

	pending, err := store.ListPending(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(pending))
	}

	store.MarkSynced(7, models.SectionLandInfo)

	pending, err = store.ListPending(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Section != models.SectionEconomical {
		t.Errorf("expected only economical pending, got %v", pending)
	}

	// The synced draft is kept for review, not cleared
	if _, ok := store.Get(7, models.SectionLandInfo); !ok {
		t.Error("synced draft should still be readable")
	}
}

func TestEditAfterSyncIsDirtyAgain(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())
	store.MarkSynced(7, models.SectionLandInfo)

	rec, _ := store.Get(7, models.SectionLandInfo)
	if rec.Dirty() {
		t.Fatal("expected clean draft after MarkSynced")
	}

	store.Put(7, models.SectionLandInfo, models.Fields{"land_extent": models.Text("4")})

	rec, _ = store.Get(7, models.SectionLandInfo)
	if !rec.Dirty() {
		t.Error("expected dirty draft after a newer edit")
	}
}

func TestPendingRequests(t *testing.T) {
	store := New(testutil.SetupTestDB(t))

	store.Put(7, models.SectionLandInfo, sampleFields())
	store.Put(9, models.SectionLandInfo, sampleFields())
	store.MarkSynced(9, models.SectionLandInfo)

	ids, err := store.PendingRequests()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != 7 {
		t.Errorf("expected [7], got %v", ids)
	}
}

// A broken store must degrade to "no draft" / "save skipped", never fail.
func TestBestEffortOnBrokenDB(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	store := New(conn)
	conn.Close()

	store.Put(7, models.SectionLandInfo, sampleFields()) // must not panic

	if _, ok := store.Get(7, models.SectionLandInfo); ok {
		t.Error("expected no draft from a broken store")
	}
}
