// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session holds the logged-in officer's auth context.

A Session is constructed once at startup and handed to the components
that need it (the sync client reads the token, screens read the
profile). It is read-mostly: Login and Logout are the only writers.
The bearer token is persisted through the secrets package so a restart
keeps the session alive; the officer profile is in-memory only.
*/
package session
