// Package apperr carries typed error kinds from services and handlers to the
// single response boundary that maps them onto HTTP statuses.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateKey
	KindInvalidCredentials
	KindUnauthenticated
	KindInvalidToken
	KindSessionExpired
	KindUserNotFound
	KindNotFound
	KindUpstreamFailure
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, not shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a kinded error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal for errors
// that did not originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindDuplicateKey:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthenticated, KindInvalidToken, KindSessionExpired:
		return http.StatusUnauthorized
	case KindUserNotFound, KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err. Non-kinded errors get a
// generic message so internals never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}
