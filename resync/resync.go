// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package resync

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/farmops/fieldsync/draftstore"
	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/section"
	"github.com/farmops/fieldsync/validate"
	"github.com/farmops/fieldsync/wizard"
)

// maxConcurrentRequests bounds how many requests sync at once. Sections
// within one request always go sequentially, in wizard order.
const maxConcurrentRequests = 4

// Remote is the slice of the sync client the syncer uses.
type Remote interface {
	Save(ctx context.Context, requestID int64, tableName string, fields models.Fields, rules validate.Rules, clears []string) (string, error)
}

// Syncer pushes drafts that were kept local-only after a failed or
// skipped submit (the proceed-anyway path).
type Syncer struct {
	drafts *draftstore.Store
	remote Remote
	defs   map[string]section.Definition
	order  map[string]int
}

// New builds a syncer over the given wizards' section definitions.
func New(drafts *draftstore.Store, remote Remote, wizards ...wizard.Wizard) *Syncer {
	s := &Syncer{
		drafts: drafts,
		remote: remote,
		defs:   map[string]section.Definition{},
		order:  map[string]int{},
	}
	pos := 0
	for _, w := range wizards {
		for _, def := range w.Sections {
			if _, seen := s.defs[def.Name]; seen {
				continue
			}
			s.defs[def.Name] = def
			s.order[def.Name] = pos
			pos++
		}
	}
	return s
}

// Request pushes every dirty draft for one request, in wizard order.
// A failed section does not block the ones after it; all failures are
// aggregated. Returns the number of sections pushed successfully.
func (s *Syncer) Request(ctx context.Context, requestID int64) (int, error) {
	pending, err := s.drafts.ListPending(requestID)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending drafts: %w", err)
	}
	s.sortByWizardOrder(pending)

	var (
		pushed int
		errs   *multierror.Error
	)
	for _, rec := range pending {
		def, ok := s.defs[rec.Section]
		if !ok {
			// A draft written by a newer app version; leave it pending.
			slog.Warn("no definition for draft section", "request_id", requestID, "section", rec.Section)
			continue
		}

		op, err := s.remote.Save(ctx, requestID, def.TableName, rec.Fields, def.Rules, clearedFields(def, rec.Fields))
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("section %s: %w", rec.Section, err))
			continue
		}

		s.drafts.MarkSynced(requestID, rec.Section)
		pushed++
		slog.Info("draft resynced",
			"request_id", requestID,
			"section", rec.Section,
			"operation", op,
		)
	}

	return pushed, errs.ErrorOrNil()
}

// All pushes dirty drafts for every request that has them, a few
// requests at a time. Returns the total number of sections pushed.
func (s *Syncer) All(ctx context.Context) (int, error) {
	ids, err := s.drafts.PendingRequests()
	if err != nil {
		return 0, fmt.Errorf("failed to list pending requests: %w", err)
	}

	var (
		mu    sync.Mutex
		total int
		errs  *multierror.Error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			n, err := s.Request(ctx, id)
			mu.Lock()
			total += n
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("request %d: %w", id, err))
			}
			mu.Unlock()
			// Failures are collected, not fatal: one offline request
			// must not cancel the others.
			return nil
		})
	}
	g.Wait()

	return total, errs.ErrorOrNil()
}

// clearedFields reconstructs the explicit nulls for a stored draft. The
// controller's in-memory cleared set does not survive a failed submit, so
// a governing field sitting at its triggering value means every unset
// dependent must still be nulled on the backend, not just absent locally.
func clearedFields(def section.Definition, fields models.Fields) []string {
	var clears []string
	for _, rule := range def.Clears {
		if !fields[rule.GoverningField].Equal(rule.GoverningValue) {
			continue
		}
		for _, dep := range rule.FieldsToClear {
			if !fields[dep].IsSet() {
				clears = append(clears, dep)
			}
		}
	}
	return clears
}

func (s *Syncer) sortByWizardOrder(recs []models.DraftRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return s.pos(recs[i].Section) < s.pos(recs[j].Section)
	})
}

func (s *Syncer) pos(name string) int {
	if p, ok := s.order[name]; ok {
		return p
	}
	return len(s.order)
}
