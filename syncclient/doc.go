// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncclient talks to the inspection backend.

# Endpoints

Every section shares one envelope:

	POST {base}/inspection/save  body {reqId, tableName, ...fields}
	→ { success, operation: "insert"|"update", message }

	GET {base}/inspection/get?reqId=&tableName=
	→ { success, data }

# Wire Translation

Encode/Decode convert between in-memory form state and the wire shape:
Yes/No answers travel as 1/0, string lists as JSON-encoded strings,
decimal and integer text fields as JSON numbers. Unset fields are
omitted rather than sent as null - except fields named in the clears
list, which are sent as explicit nulls so that dependent data cleared by
a governing Yes/No flip is also removed on the backend.

# Failure Semantics

A Save issues exactly one HTTP request; there is no client-side retry -
the user retries by pressing Next again. A missing bearer token returns
ErrSessionExpired before any network use. A backend success:false
response returns an error wrapping ErrRejected with the backend message.

Every request carries Authorization, a fresh X-Request-ID (uuid), and
the install's X-Device-UUID.
*/
package syncclient
