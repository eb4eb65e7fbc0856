// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draftstore is the local draft store: per-section, per-request
persistence of partially filled form state.

# Contract

	store := draftstore.New(conn)
	rec, ok := store.Get(requestID, section)   // ok=false means "new entry"
	store.Put(requestID, section, fields)      // full overwrite, best-effort
	store.MarkSynced(requestID, section)       // stamp after remote accept

Get and Put never return errors. A read failure is treated as "no draft",
a write failure as "save skipped", both logged at Warn. The store is a
best-effort cache in front of the backend, not a durable ledger, and a
broken cache must never block form entry.

At most one draft exists per (requestID, section); Put overwrites the
whole payload, so the stored row is always the most recently edited state
on this device. A successful remote save does not clear the draft - it is
kept for review after submit - only synced_at is stamped.

# Pending Resync

ListPending and PendingRequests find drafts whose updated_at is newer
than synced_at, which is how the resync package discovers work after the
user chose to proceed past a failed submit.
*/
package draftstore
