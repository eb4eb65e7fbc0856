// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package section implements the form section controller: one state
machine, instantiated per section with a per-section Definition, instead
of a hand-copied load/debounce/validate/submit block per screen.

# Lifecycle

	Loading → Empty | Populated → Editing ⇄ Saving → Submitting
	                                              → Complete | SubmitFailed

On mount, Load hydrates from the local draft store (or the backend for
RemoteHydrate sections). Every SetField revalidates the whole section
synchronously and schedules a debounced local save (500ms default); a
newer edit inside the window cancels and reschedules, so only the latest
state is ever persisted. Unmount cancels outright.

# Submitting

Submit is triggered only by an explicit Next. It flushes the pending
auto-save, issues exactly one remote call, and refuses re-entry
(ErrSubmitInFlight) while in flight. Success marks the section as
existing data and stamps the draft as synced; failure leaves every
entered value intact for retry. ProceedAnyway lets the user move on with
a local-only draft pending resync.

# Clearing Rules

Each Definition lists ClearRules: when a governing field takes its
triggering value (has_risk = No), the dependent fields are cleared in
memory immediately - before the next local save can fire - and
remembered so the next remote save nulls them on the backend too.

# Error Propagation

Validation errors never leave this package's error map. Draft store
failures never reach it at all. Remote errors are returned from Submit
to whoever owns the UI alert; the wizard sequencer only ever sees
"advance" or "stay".
*/
package section
