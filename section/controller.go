// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package section

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/validate"
)

// DefaultDebounce is the local auto-save delay.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrSubmitInFlight means Next was triggered while an earlier submit
	// for this section is still running. The UI disables its control for
	// the duration; this error covers races past that.
	ErrSubmitInFlight = errors.New("submit already in flight")

	// ErrIncomplete means the forward gate is closed: validation errors
	// remain or a required field is empty.
	ErrIncomplete = errors.New("section incomplete")

	// ErrMissingContext means the request id is absent or invalid at
	// submit time - a wizard-entry bug upstream, fatal to this flow.
	ErrMissingContext = errors.New("missing request context")
)

// Stage is the controller's position in its lifecycle.
type Stage int

const (
	StageLoading Stage = iota
	StageEmpty
	StagePopulated
	StageEditing
	StageSaving
	StageSubmitting
	StageComplete
	StageSubmitFailed
)

func (s Stage) String() string {
	switch s {
	case StageLoading:
		return "loading"
	case StageEmpty:
		return "empty"
	case StagePopulated:
		return "populated"
	case StageEditing:
		return "editing"
	case StageSaving:
		return "saving"
	case StageSubmitting:
		return "submitting"
	case StageComplete:
		return "complete"
	case StageSubmitFailed:
		return "submit_failed"
	}
	return "unknown"
}

// Drafts is the slice of the draft store the controller uses.
type Drafts interface {
	Get(requestID int64, section string) (models.DraftRecord, bool)
	Put(requestID int64, section string, fields models.Fields)
	MarkSynced(requestID int64, section string)
}

// Remote is the slice of the sync client the controller uses.
type Remote interface {
	Save(ctx context.Context, requestID int64, tableName string, fields models.Fields, rules validate.Rules, clears []string) (string, error)
	Load(ctx context.Context, requestID int64, tableName string, rules validate.Rules) (models.Fields, bool, error)
}

// Controller runs one section's load → edit → debounced local save →
// validate → remote submit lifecycle. One instance per mounted section;
// it touches only its own (requestID, section) draft key.
type Controller struct {
	def    Definition
	reqCtx models.RequestContext
	drafts Drafts
	remote Remote
	deb    *debouncer

	mu         sync.Mutex
	stage      Stage
	fields     models.Fields
	errs       map[string]string
	clears     map[string]struct{}
	isExisting bool
	submitting bool
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	clk      clock.Clock
	debounce time.Duration
}

// WithClock substitutes the timer source, letting tests drive the
// debounce window deterministically.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clk = clk }
}

// WithDebounce overrides the auto-save delay.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func NewController(def Definition, reqCtx models.RequestContext, drafts Drafts, remote Remote, opts ...Option) *Controller {
	o := options{clk: clock.New(), debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		def:    def,
		reqCtx: reqCtx,
		drafts: drafts,
		remote: remote,
		deb:    newDebouncer(o.clk, o.debounce),
		stage:  StageLoading,
		fields: models.Fields{},
		errs:   map[string]string{},
		clears: map[string]struct{}{},
	}
}

// Load hydrates the section on mount: from the local draft store, or
// from the backend for RemoteHydrate sections. A found draft marks the
// section as existing data, so the eventual submit is an update.
//
// Only a RemoteHydrate section can return an error; a local read failure
// is already absorbed by the draft store.
func (c *Controller) Load(ctx context.Context) error {
	if c.def.RemoteHydrate {
		fields, found, err := c.remote.Load(ctx, c.reqCtx.RequestID, c.def.TableName, c.def.Rules)
		if err != nil {
			c.mu.Lock()
			c.stage = StageEmpty
			c.mu.Unlock()
			return err
		}
		c.populate(fields, found)
		return nil
	}

	rec, found := c.drafts.Get(c.reqCtx.RequestID, c.def.Name)
	c.populate(rec.Fields, found)
	return nil
}

func (c *Controller) populate(fields models.Fields, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if found {
		c.fields = fields.Clone()
		c.isExisting = true
		c.stage = StagePopulated
	} else {
		c.fields = models.Fields{}
		c.stage = StageEmpty
	}
}

// SetField applies one field edit: normalize, re-validate the whole
// section (cross-field rules included), evaluate clearing rules, and
// schedule the debounced local save. Validation runs synchronously;
// persistence does not.
func (c *Controller) SetField(name string, v models.FieldValue) {
	c.mu.Lock()

	c.fields[name] = v
	delete(c.clears, name) // re-entering a cleared field revives it

	c.applyClearRules(name)

	normalized, errs := validate.Section(c.fields, c.def.Rules)
	c.fields = normalized
	c.errs = errs
	c.stage = StageEditing

	snapshot := c.fields.Clone()
	c.mu.Unlock()

	c.deb.Schedule(func() { c.saveLocal(snapshot) })
}

// applyClearRules clears dependents when the edited field is a governing
// field sitting at its triggering value. Cleared fields are remembered so
// the next remote save nulls them explicitly. Caller holds c.mu.
func (c *Controller) applyClearRules(edited string) {
	for _, rule := range c.def.Clears {
		if rule.GoverningField != edited {
			continue
		}
		if !c.fields[edited].Equal(rule.GoverningValue) {
			continue
		}
		for _, dep := range rule.FieldsToClear {
			if c.fields[dep].IsSet() {
				c.fields[dep] = models.Unset()
				c.clears[dep] = struct{}{}
			}
			delete(c.errs, dep)
		}
	}
}

func (c *Controller) saveLocal(snapshot models.Fields) {
	c.mu.Lock()
	if c.stage == StageEditing {
		c.stage = StageSaving
	}
	c.mu.Unlock()

	c.drafts.Put(c.reqCtx.RequestID, c.def.Name, snapshot)

	c.mu.Lock()
	if c.stage == StageSaving {
		c.stage = StageEditing
	}
	c.mu.Unlock()
}

// CanAdvance is the forward gate: no validation errors, every required
// field populated, and no submit already in flight.
func (c *Controller) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	return len(c.errs) == 0 && validate.Complete(c.fields, c.def.Rules)
}

// Submit pushes the section to the backend. Exactly one remote call is
// issued per invocation, and a second invocation while one is in flight
// returns ErrSubmitInFlight without touching the network. On success the
// caller advances the wizard; on failure every entered value is intact
// and the user may retry or proceed anyway.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.reqCtx.Valid() {
		return ErrMissingContext
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if len(c.errs) != 0 || !validate.Complete(c.fields, c.def.Rules) {
		c.mu.Unlock()
		return ErrIncomplete
	}
	c.submitting = true
	c.stage = StageSubmitting
	snapshot := c.fields.Clone()
	clears := make([]string, 0, len(c.clears))
	for name := range c.clears {
		clears = append(clears, name)
	}
	c.mu.Unlock()

	// The submitted state is also the draft state: flush any pending
	// auto-save and write the snapshot before going to the network.
	c.deb.Flush()
	c.drafts.Put(c.reqCtx.RequestID, c.def.Name, snapshot)

	op, err := c.remote.Save(ctx, c.reqCtx.RequestID, c.def.TableName, snapshot, c.def.Rules, clears)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.stage = StageSubmitFailed
		return err
	}

	c.isExisting = true
	c.clears = map[string]struct{}{}
	c.stage = StageComplete
	c.drafts.MarkSynced(c.reqCtx.RequestID, c.def.Name)

	slog.Info("section submitted",
		"request_id", c.reqCtx.RequestID,
		"section", c.def.Name,
		"operation", op,
	)
	return nil
}

// ProceedAnyway is the degraded path past a failed submit: the draft is
// persisted for a later resync and the section is marked complete
// locally, favoring forward progress over strict consistency while the
// device may be offline.
func (c *Controller) ProceedAnyway() {
	c.deb.Flush()

	c.mu.Lock()
	snapshot := c.fields.Clone()
	c.stage = StageComplete
	c.mu.Unlock()

	c.drafts.Put(c.reqCtx.RequestID, c.def.Name, snapshot)

	slog.Warn("section kept local only",
		"request_id", c.reqCtx.RequestID,
		"section", c.def.Name,
	)
}

// Unmount cancels any pending auto-save. Navigating away mid-edit must
// not fire a stale save afterwards.
func (c *Controller) Unmount() {
	c.deb.Stop()
}

// Stage returns the controller's current lifecycle stage.
func (c *Controller) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// Fields returns a copy of the current form state.
func (c *Controller) Fields() models.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields.Clone()
}

// Errors returns a copy of the current validation error map.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// IsExistingData reports whether the section was hydrated from, or has
// been accepted by, persistent storage - the insert/update signal.
func (c *Controller) IsExistingData() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isExisting
}

// Definition returns the section's definition.
func (c *Controller) Definition() Definition {
	return c.def
}
