// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package secrets holds the opaque credentials the sync client needs.

# Store

Store is a minimal get/set/clear interface over named secrets. The
default SQLStore keeps them in the on-device database's secret table;
nothing else in the codebase touches that table directly.

Two names are well known:

  - auth_token: the bearer token issued at login. Its absence means the
    session has expired; the sync client surfaces that before issuing
    any call.
  - device_uuid: a stable per-install identifier sent as X-Device-UUID
    on every request. DeviceUUID mints one on first use.
*/
package secrets
