// Package crypto provides encryption for credentials at rest.
//
// Implements AES-256-GCM for tokens written to the local credentials file.
// Two implementations: AesGcmService (keyed) and NoopService (plaintext
// passthrough when no key is configured).
package crypto
