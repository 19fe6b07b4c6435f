package api

import (
	"errors"
	"fmt"
)

// The client sorts every failed call into one of three transport classes,
// mirroring how the dashboard's response interceptor logged them: the
// server answered with an error status, the request went out but nothing
// came back, or the request never left the client at all. A fourth class
// covers 2xx answers whose payload does not say what it must.

// StatusError means the server responded with a non-2xx status. Message
// carries the backend's own message when the body had one.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// ConnectivityError means the request was sent but no response arrived:
// connection refused, DNS failure, timeout.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("no response from %s: %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// RequestError means the request could not even be constructed or
// serialized, so nothing was sent.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("failed to build request: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// MalformedResponseError means the server answered 2xx but the envelope
// was missing its success flag or the data the endpoint promises.
type MalformedResponseError struct {
	Message string
}

func (e *MalformedResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("malformed response from server: %s", e.Message)
	}
	return "malformed response from server"
}

// UserMessage maps any error from this client to the string shown to the
// operator. Backend-provided messages win; each transport class otherwise
// gets its own fixed wording so the operator can tell a rejected login
// from an unreachable server.
func UserMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return fmt.Sprintf("The server rejected the request (status %d).", statusErr.StatusCode)
	}

	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return "Cannot reach the OPCA server. Check your connection and the API address."
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return "The request could not be sent. This is a client-side problem."
	}

	var malformedErr *MalformedResponseError
	if errors.As(err, &malformedErr) {
		return "The server answer was not in the expected format."
	}

	return err.Error()
}
