// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package section

import (
	"github.com/farmops/fieldsync/models"
	"github.com/farmops/fieldsync/validate"
)

// ClearRule declares dependent fields that must be cleared when a
// governing field takes a given value, e.g. wiping the risk sub-fields
// when has_risk flips to No. Clearing is explicit so stale dependent
// data is also nulled out on the backend, not just dropped locally.
type ClearRule struct {
	GoverningField string
	GoverningValue models.FieldValue
	FieldsToClear  []string
}

// Definition is everything section-specific the controller needs: the
// draft key, the backend table, the rule table, and the clearing rules.
// The controller itself is identical across all sections.
type Definition struct {
	Name      string // draft section key
	TableName string // backend table name
	Title     string // display name

	Rules  validate.Rules
	Clears []ClearRule

	// RemoteHydrate sections load from the backend on mount instead of
	// the local draft store (no offline-draft requirement applies).
	RemoteHydrate bool
}
