// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"errors"
	"sync"

	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/section"
)

// ErrInvalidContext means the wizard was entered without a usable
// (requestID, requestNumber) pair - an upstream screen bug.
var ErrInvalidContext = errors.New("invalid request context")

// Wizard is a fixed, ordered list of section definitions, known at
// definition time.
type Wizard struct {
	Name     string
	Sections []section.Definition
}

// Index returns the position of a section by name.
func (w Wizard) Index(name string) (int, bool) {
	for i, def := range w.Sections {
		if def.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Sequencer walks a wizard's sections for one request. The request
// context is immutable for the sequencer's lifetime; every section
// mutation is scoped to it.
type Sequencer struct {
	wiz    Wizard
	reqCtx models.RequestContext

	mu      sync.Mutex
	current int
}

// NewSequencer enters a wizard. The context comes from the screen that
// created or selected the request and is never re-derived mid-wizard.
func NewSequencer(w Wizard, reqCtx models.RequestContext) (*Sequencer, error) {
	if !reqCtx.Valid() {
		return nil, ErrInvalidContext
	}
	if len(w.Sections) == 0 {
		return nil, errors.New("wizard has no sections")
	}
	return &Sequencer{wiz: w, reqCtx: reqCtx}, nil
}

// Context returns the wizard's request context.
func (s *Sequencer) Context() models.RequestContext {
	return s.reqCtx
}

// Current returns the active section's definition.
func (s *Sequencer) Current() section.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wiz.Sections[s.current]
}

// CurrentIndex returns the active section's position.
func (s *Sequencer) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// GoToSection moves to a named section, but only backwards or to the
// current position. Jumping ahead of the cursor is silently ignored -
// the UI shows those steps disabled rather than erroring - as is an
// unknown name.
func (s *Sequencer) GoToSection(name string) {
	idx, ok := s.wiz.Index(name)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx > s.current {
		return
	}
	s.current = idx
}

// Advance moves forward by exactly one section. It is called only after
// a successful (or explicitly proceed-anyway) section submit. The return
// is false once the wizard is past its last section.
func (s *Sequencer) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current >= len(s.wiz.Sections)-1 {
		s.current = len(s.wiz.Sections) - 1
		return false
	}
	s.current++
	return true
}

// Mount builds a controller for the active section, carrying the
// wizard's request context. The controller never invents its own id.
func (s *Sequencer) Mount(drafts section.Drafts, remote section.Remote, opts ...section.Option) *section.Controller {
	return section.NewController(s.Current(), s.reqCtx, drafts, remote, opts...)
}
