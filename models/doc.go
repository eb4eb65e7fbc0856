// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the field-value, draft, and wire-envelope types
shared by every other package.

# Field Values

FieldValue is a tagged union over the value shapes a form field can hold:

  - Text: free text, names, phone numbers, national IDs
  - Number: numeric-decimal and numeric-integer fields
  - YesNo: enumerated yes/no answers
  - List: multi-select string lists (crop types, irrigation methods)
  - Unset: no value entered yet (distinct from empty text)

Fields is a map of field name to FieldValue and is the in-memory state of
one form section.

# Drafts

DraftRecord is one locally persisted section draft, keyed by
(RequestID, Section). SyncedAt tracks the last successful remote save;
Dirty() reports whether local edits still await a push.

# Wire Envelopes

SaveResponse and LoadResponse mirror the backend's uniform envelope:

	POST {base}/inspection/save → { success, operation, message }
	GET  {base}/inspection/get  → { success, data }

The per-section field names differ, but every section uses this envelope.

# Sections

The Section* constants list the farm inspection wizard's sections. Their
wizard order is defined in the wizard package, not here.
*/
package models
