// Package apperr classifies service failures so the HTTP layer can map
// them to status codes without string matching. A rejected operation
// leaves prior state unchanged; Upstream is internal only and is always
// converted into a structured result before reaching a caller.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure class of an Error.
type Kind int

const (
	// NotFound means a referenced entity is absent.
	NotFound Kind = iota
	// Conflict means a uniqueness rule was violated (duplicate username).
	Conflict
	// Validation means a required input is missing or malformed.
	Validation
	// Precondition means a feature is disabled or unconfigured.
	Precondition
	// Auth means the caller is not authenticated.
	Auth
	// Upstream means a network peer failed; never surfaced as a hard error.
	Upstream
)

// Error is a classified failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with the given message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap returns a classified error around an underlying cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is (or wraps) an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Message returns the classified message of err, or a fallback when err
// carries no classification.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}
