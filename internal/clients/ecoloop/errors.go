package ecoloop

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaces as a value wrapping exactly one of
// these sentinels, so callers branch with errors.Is instead of inspecting
// status codes.
var (
	// ErrUnauthorized is an authentication failure. The session is
	// invalidated before it is returned.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired fails calls fast once the session was invalidated.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is an authorization failure. No state changed.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is a business-rule rejection, most commonly a lost claim.
	// It is an expected outcome, not a fault.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means the addressed resource is gone; resync.
	ErrNotFound = errors.New("not found")
	// ErrServer is a 5xx fault. Inform and retry later, no local change.
	ErrServer = errors.New("server error")
	// ErrRequestInFlight rejects a duplicate submission of a transition
	// already in flight.
	ErrRequestInFlight = errors.New("request already in flight")
	// ErrManagerClosed is returned by operations on a closed manager.
	ErrManagerClosed = errors.New("manager is closed")
)

// APIError carries the server's error body alongside the taxonomy sentinel.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func newAPIError(status int, message string, kind error) *APIError {
	return &APIError{Status: status, Message: message, kind: kind}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (http %d)", e.kind, e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// TransportError is a network-level failure. Timeout distinguishes a
// deadline from a connection failure when the transport signals it.
type TransportError struct {
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("transport timeout: %v", e.Err)
	}
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
