package http

import (
	"net/http"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/service"
	"github.com/aussiebroadwan/authsvc/pkg/authsdk"
	"github.com/aussiebroadwan/authsvc/pkg/httpx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP creates a user account.
//
//	@Summary		Register a user
//	@Description	Creates an account and returns it with a bearer token. Every failure is reported as 400.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	authsdk.AuthResponse	"Created user and token"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid input, Email already exists, Username already exists"
//	@Router			/v1/auth/register [post]
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Info("invalid register body", "error", err)
		(&authsdk.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}).WriteError(w)
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(res))
}

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP authenticates a username or email and password pair.
//
//	@Summary		Log in
//	@Description	Authenticates with a username or email address and returns the user with a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse	"Authenticated user and token"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Invalid input, User not found, Password is incorrect"
//	@Router			/v1/auth/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Info("invalid login body", "error", err)
		(&authsdk.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}).WriteError(w)
		return
	}

	res, err := h.AuthService.Authenticate(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}

// MeHandler serves the user resolved by the bearer middleware.
type MeHandler struct{}

// ServeHTTP returns the authenticated user.
//
//	@Summary		Current user
//	@Description	Resolves the bearer token to the user it was issued for.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse		"Authenticated user"
//	@Failure		400	{object}	authsdk.ErrorResponse	"Missing or malformed Authorization header"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or expired token, or unknown user"
//	@Router			/v1/auth/me [get]
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := httpx.PrincipalFrom[domain.User](r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, service.ErrInvalidToken)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{User: toUser(user)})
}

func toUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAuthResponse(res domain.AuthResult) authsdk.AuthResponse {
	return authsdk.AuthResponse{User: toUser(res.User), Token: res.Token}
}
