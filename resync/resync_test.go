// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resync

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/farmops/fieldsync/draftstore"
	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/testutil"
	"github.com/farmops/fieldsync/validate"
	"github.com/farmops/fieldsync/wizard"
)

// orderedRemote records save order and clears, and fails chosen tables.
type orderedRemote struct {
	mu     sync.Mutex
	order  []string
	clears map[string][]string
	fail   map[string]bool
}

func (r *orderedRemote) Save(ctx context.Context, requestID int64, tableName string, fields models.Fields, rules validate.Rules, clears []string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, tableName)
	if r.clears == nil {
		r.clears = map[string][]string{}
	}
	r.clears[tableName] = append([]string(nil), clears...)
	if r.fail[tableName] {
		return "", errors.New("network down")
	}
	return "update", nil
}

func (r *orderedRemote) saved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

func (r *orderedRemote) clearsFor(tableName string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears[tableName]
}

func TestRequestPushesInWizardOrder(t *testing.T) {
	drafts := draftstore.New(testutil.SetupTestDB(t))
	remote := &orderedRemote{}
	syncer := New(drafts, remote, wizard.FarmInspection())

	// Stored alphabetically; must be pushed in wizard order
	drafts.Put(7, models.SectionEconomical, models.Fields{"annual_income": models.Text("90000")})
	drafts.Put(7, models.SectionLandInfo, models.Fields{"land_extent": models.Text("2.5")})
	drafts.Put(7, models.SectionPersonalInfo, models.Fields{"farmer_name": models.Text("Kumara")})

	pushed, err := syncer.Request(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if pushed != 3 {
		t.Errorf("expected 3 pushed, got %d", pushed)
	}

	want := []string{models.SectionPersonalInfo, models.SectionLandInfo, models.SectionEconomical}
	got := remote.saved()
	if len(got) != len(want) {
		t.Fatalf("expected %d saves, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("save %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	// Everything is stamped synced
	pending, err := drafts.ListPending(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending drafts, got %d", len(pending))
	}
}

func TestRequestFailureDoesNotBlockOthers(t *testing.T) {
	drafts := draftstore.New(testutil.SetupTestDB(t))
	remote := &orderedRemote{fail: map[string]bool{models.SectionLandInfo: true}}
	syncer := New(drafts, remote, wizard.FarmInspection())

	drafts.Put(7, models.SectionLandInfo, models.Fields{"land_extent": models.Text("2.5")})
	drafts.Put(7, models.SectionEconomical, models.Fields{"annual_income": models.Text("90000")})

	pushed, err := syncer.Request(context.Background(), 7)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if pushed != 1 {
		t.Errorf("expected 1 pushed despite failure, got %d", pushed)
	}

	pending, listErr := drafts.ListPending(7)
	if listErr != nil {
		t.Fatal(listErr)
	}
	if len(pending) != 1 || pending[0].Section != models.SectionLandInfo {
		t.Errorf("expected land_info still pending, got %v", pending)
	}
}

// A draft kept after a failed submit carries no in-memory cleared set, so
// the push must rebuild the explicit nulls from the clearing rules.
func TestRequestNullsClearedDependents(t *testing.T) {
	drafts := draftstore.New(testutil.SetupTestDB(t))
	remote := &orderedRemote{}
	syncer := New(drafts, remote, wizard.FarmInspection())

	drafts.Put(7, models.SectionProfitRisk, models.Fields{
		"profit":        models.Text("1500"),
		"is_profitable": models.YesNo(true),
		"has_risk":      models.YesNo(false),
	})

	if _, err := syncer.Request(context.Background(), 7); err != nil {
		t.Fatal(err)
	}

	got := remote.clearsFor(models.SectionProfitRisk)
	want := []string{"risk_type", "risk_mitigation", "risk_cost"}
	if len(got) != len(want) {
		t.Fatalf("expected %d cleared fields, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("clear %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRequestSkipsUnknownSections(t *testing.T) {
	drafts := draftstore.New(testutil.SetupTestDB(t))
	remote := &orderedRemote{}
	syncer := New(drafts, remote, wizard.FarmInspection())

	drafts.Put(7, "future_section", models.Fields{"x": models.Text("1")})

	pushed, err := syncer.Request(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if pushed != 0 {
		t.Errorf("expected nothing pushed, got %d", pushed)
	}

	// Still pending for a future app version
	pending, _ := drafts.ListPending(7)
	if len(pending) != 1 {
		t.Errorf("unknown section should stay pending, got %v", pending)
	}
}

func TestAllSyncsEveryPendingRequest(t *testing.T) {
	drafts := draftstore.New(testutil.SetupTestDB(t))
	remote := &orderedRemote{}
	syncer := New(drafts, remote, wizard.FarmInspection(), wizard.CapitalRequest())

	drafts.Put(7, models.SectionLandInfo, models.Fields{"land_extent": models.Text("2.5")})
	drafts.Put(8, "applicant_info", models.Fields{"applicant_name": models.Text("Kumara")})
	drafts.Put(9, models.SectionEconomical, models.Fields{"annual_income": models.Text("90000")})
	drafts.MarkSynced(9, models.SectionEconomical)

	pushed, err := syncer.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if pushed != 2 {
		t.Errorf("expected 2 pushed, got %d", pushed)
	}

	ids, _ := drafts.PendingRequests()
	if len(ids) != 0 {
		t.Errorf("expected no pending requests, got %v", ids)
	}
}
