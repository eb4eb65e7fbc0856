// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the fieldsync command-line entry point.

fieldsync is the draft form sync engine behind the field-operations app:
multi-step inspection and capital-request wizards with local draft
persistence, debounced auto-save, and push-to-backend on submit. The
packages below are consumed as a library by the app; this binary exposes
the maintenance surface.

# Commands

	fieldsync drafts -req 42            list a request's drafts
	fieldsync show -req 42 -section economical
	fieldsync resync                    push all pending drafts
	fieldsync resync -req 42            push one request's pending drafts

# Configuration

Required settings:

  - API_BASE_URL (-b): inspection backend base URL

Optional settings:

  - DB_PATH (-db): on-device database path (default: fieldsync.db)
  - FIELDSYNC_CONFIG (-c): YAML config file

A .env file in the working directory is honored.

# Architecture

  - models: field values, draft records, wire envelopes
  - draftstore: best-effort local draft persistence (SQLite)
  - validate: per-field rules, normalization, the forward gate
  - section: the per-section controller state machine
  - wizard: ordered section sequencing and the built-in wizards
  - syncclient: HTTP calls to the backend, wire translation
  - secrets: bearer token and device identity
  - session: the logged-in officer's context
  - resync: replay of pending drafts
  - cliparse, db: configuration and schema

See package documentation for each component.
*/
package main
