package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrAuthMismatch is returned when a secret fails re-verification on a mutating call.
	ErrAuthMismatch = errors.New("auth mismatch")
	// ErrWrite is returned when the store rejected a mutation.
	ErrWrite = errors.New("write rejected")
	// ErrUnreachable is returned when the store could not be contacted at all.
	ErrUnreachable = errors.New("store unreachable")
)

// CodeAuthMismatch is the API error code carried with ErrAuthMismatch, so
// clients can tell a rejected secret from an expired session.
const CodeAuthMismatch = "auth_mismatch"
