// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package resync pushes drafts that are newer locally than on the backend.

A draft ends up pending when a submit failed and the officer chose to
proceed anyway (the device was likely offline), or when the submit was
never attempted. The Syncer finds those drafts, replays them through the
sync client in wizard section order, and stamps each one synced as the
backend accepts it.

Requests are independent, so All syncs several at once (bounded); the
sections of one request stay strictly sequential. Failures are
aggregated per request and reported together - a request that is still
offline must not hide or cancel the others.
*/
package resync
