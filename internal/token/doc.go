// Package token checks stored access tokens for validity: mock-prefix
// rejection, claims extraction, and expiry against an injectable clock.
// Signature verification is the backend's job; this client only needs to
// know whether presenting the token is worthwhile.
package token
