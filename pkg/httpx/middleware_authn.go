package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrMalformedAuthorization is returned when an Authorization header is
// present but does not use the Bearer scheme.
var ErrMalformedAuthorization = errors.New("authorization header must use the Bearer scheme")

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A request without the header yields an empty token and no error;
// deciding whether that is acceptable is left to the authenticator.
func BearerToken(r *http.Request) (string, error) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return "", nil
	}

	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMalformedAuthorization
	}
	return strings.TrimSpace(token), nil
}

// Authenticator resolves a bearer token into a principal.
type Authenticator[T any] func(ctx context.Context, token string) (T, error)

// AuthnMiddleware authenticates the bearer token of each request and stores
// the resolved principal in the request context (see PrincipalFrom). Any
// failure, including a malformed header, is handed to fail and the request
// stops there.
func AuthnMiddleware[T any](
	authenticate Authenticator[T],
	fail func(w http.ResponseWriter, r *http.Request, err error),
) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				fail(w, r, err)
				return
			}

			p, err := authenticate(r.Context(), token)
			if err != nil {
				fail(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// WriteBearerError writes an RFC 6750 style 401 with a {"message"} body.
func WriteBearerError(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteMessage(w, http.StatusUnauthorized, msg)
}
