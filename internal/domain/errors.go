package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Infrastructure packages classify raw
// transport failures into exactly one of these so handlers can decide
// between retrying, re-authenticating and failing the request.
var (
	// ErrAuthMissing indicates the request carried no (or an incomplete)
	// credential. No upstream call is attempted in this state.
	ErrAuthMissing = errors.New("authentication missing")

	// ErrAuthInvalid indicates the provider rejected a code or refresh
	// exchange. The caller must restart the consent flow.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrAuthUnavailable indicates a transient network failure while talking
	// to the identity provider. Retryable.
	ErrAuthUnavailable = errors.New("authentication provider unavailable")

	// ErrCredentialRejected indicates the spreadsheet API rejected the bearer
	// token mid-operation. The credential expired between check and use; the
	// caller should re-authenticate rather than retry.
	ErrCredentialRejected = errors.New("credential rejected by upstream")

	// ErrUpstreamUnavailable indicates quota or server errors persisted after
	// the retry budget was exhausted. Retryable later.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrNotFound indicates no row in the table matches the requested key.
	ErrNotFound = errors.New("not found")

	// ErrMalformed indicates the sheet returned an unexpected shape, such as
	// a header row that no longer matches the mapped schema.
	ErrMalformed = errors.New("malformed sheet data")

	// ErrConflict is reserved for optimistic-locking support. The base design
	// is last-write-wins and never raises it.
	ErrConflict = errors.New("conflict")
)

// OpError annotates an error kind with the entity, key and operation that
// produced it, so callers can log and decide whether to prompt
// re-authentication without parsing message strings.
type OpError struct {
	Entity string
	Key    string
	Op     string
	Err    error
}

func (e *OpError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Key, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// WrapOp wraps err with operation context. Returns nil when err is nil so
// call sites can wrap unconditionally.
func WrapOp(entity, key, op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Entity: entity, Key: key, Op: op, Err: err}
}

// IsAuthError reports whether err requires the caller to (re-)authenticate.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthMissing) ||
		errors.Is(err, ErrAuthInvalid) ||
		errors.Is(err, ErrCredentialRejected)
}

// IsRetryable reports whether err is expected to clear on its own.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrAuthUnavailable) || errors.Is(err, ErrUpstreamUnavailable)
}
