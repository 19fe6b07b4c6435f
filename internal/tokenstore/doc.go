// Package tokenstore persists the session credentials: access token,
// refresh token, and the serialized user profile, under the same three
// key names the OPCA web dashboard used in browser storage. Backends
// cover a local credentials file (optionally encrypted), process memory,
// and Redis; all of them degrade to no-ops rather than failing.
package tokenstore
