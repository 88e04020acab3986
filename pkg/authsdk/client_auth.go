package authsdk

import (
	"context"
	"net/http"
)

// Register creates a new account and returns it together with a bearer token.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", req, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticate logs in with a username or email address and a password.
func (c *SDKClient) Authenticate(ctx context.Context, usernameOrEmail, password string) (*AuthResponse, error) {
	req := LoginRequest{UsernameOrEmail: usernameOrEmail, Password: password}

	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user a bearer token was issued for.
func (c *SDKClient) Me(ctx context.Context, token string) (*User, error) {
	headers := map[string]string{"Authorization": "Bearer " + token}

	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/me", nil, headers)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}
