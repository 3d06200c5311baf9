// Package apperr classifies failures that cross the service boundary so the
// HTTP layer can map them to status codes in one place.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal           Kind = "internal"
	KindAuthMissing        Kind = "auth_missing"
	KindAuthMalformed      Kind = "auth_malformed"
	KindAuthExpired        Kind = "auth_expired"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindValidation         Kind = "validation"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindUpstreamFormat     Kind = "upstream_format"
	KindUpstreamCall       Kind = "upstream_call"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsUpstream reports whether err came from the AI model round-trip.
func IsUpstream(err error) bool {
	kind := KindOf(err)
	return kind == KindUpstreamFormat || kind == KindUpstreamCall
}
