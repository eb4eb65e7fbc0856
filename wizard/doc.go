// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package wizard sequences the ordered sections of a multi-step form.

# Sequencer

A Sequencer walks one wizard for one request. It enforces the
reachability rule: a section is enterable only if it is at or before the
cursor. GoToSection ahead of the cursor is a silent no-op (the UI shows
those steps disabled; it is not an error), back-navigation is always
allowed, and Advance moves forward by exactly one after a successful
section submit.

The (requestID, requestNumber) pair is fixed at entry, carried through
every transition, and never re-derived; Mount hands it to each section
controller.

# Built-in Wizards

FarmInspection is the eleven-section inspection flow (Personal Info
through Harvest Storage). CapitalRequest is the shorter capital-request
flow, whose officer-review section hydrates from the backend instead of
the local draft store.
*/
package wizard
