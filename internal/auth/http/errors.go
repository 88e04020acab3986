package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/authsvc/internal/auth/service"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/authsdk"
	"github.com/aussiebroadwan/authsvc/pkg/httpx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"
)

// Kinds whose own text is the client-facing message.
var publicKinds = []error{
	service.ErrDuplicateEmail,
	service.ErrUserNotFound,
	service.ErrIncorrectPassword,
	service.ErrMissingToken,
	service.ErrInvalidToken,
	service.ErrAuthenticationFailed,
}

// errorMessage picks the message shown to clients for a service error.
// Anything unrecognised collapses to "Authentication failed".
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidRegistration), errors.Is(err, service.ErrInvalidCredentials):
		return err.Error() // carries the offending field, never a value
	case store.IsConflict(err, "username"):
		return "Username already exists"
	case errors.Is(err, service.ErrConflict):
		return service.ErrConflict.Error()
	}

	for _, kind := range publicKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return service.ErrAuthenticationFailed.Error()
}

func writeError(w http.ResponseWriter, code int, err error) {
	(&authsdk.APIError{StatusCode: code, Message: errorMessage(err)}).WriteError(w)
}

// writeAuthnError maps bearer authentication failures: a missing or
// malformed header is the client's request problem (400), everything else
// means the token can't be honoured (401).
func writeAuthnError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Info("bearer authentication failed", "error", err)

	switch {
	case errors.Is(err, httpx.ErrMalformedAuthorization):
		(&authsdk.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}).WriteError(w)
	case errors.Is(err, service.ErrMissingToken):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusUnauthorized, err)
	}
}
