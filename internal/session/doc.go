// Package session orchestrates the login/logout lifecycle: it drives the
// auth endpoints, persists credentials through the token store, restores
// a session from storage at startup, and tells an injected navigator
// where to go after each transition.
package session
