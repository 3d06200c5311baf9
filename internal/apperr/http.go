package apperr

import (
	"errors"
	"net/http"
)

const (
	genericUpstreamMessage = "Failed to analyze image"
	genericInternalMessage = "internal_server_error"
)

// HTTPStatus maps a kind to the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindAuthMissing, KindAuthMalformed, KindAuthExpired, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a client. Causes never leak, and
// upstream failures share one message.
func PublicMessage(err error) string {
	kind := KindOf(err)
	switch {
	case kind == KindUpstreamCall || kind == KindUpstreamFormat:
		return genericUpstreamMessage
	case kind == KindInternal:
		return genericInternalMessage
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return string(kind)
}
