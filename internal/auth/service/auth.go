package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/cryptox"
	"github.com/aussiebroadwan/authsvc/pkg/idx"
	"github.com/aussiebroadwan/authsvc/pkg/jwtx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"
)

// TokenManager issues and verifies bearer tokens for user ids.
type TokenManager interface {
	jwtx.Signer
	jwtx.Verifier
}

// AuthService registers users, authenticates credentials and resolves
// bearer tokens back to users. It keeps no per-request state; all durable
// state lives in Store.
type AuthService struct {
	Store  store.Store
	Tokens TokenManager
}

// Register creates a user and returns it with a fresh token.
//
// Email uniqueness is checked up front so the common case reports
// ErrDuplicateEmail; the store's UNIQUE constraints settle any race, and a
// duplicate username surfaces as ErrConflict.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return domain.AuthResult{}, fmt.Errorf("%w: username is required", ErrInvalidRegistration)
	case email == "":
		return domain.AuthResult{}, fmt.Errorf("%w: email is required", ErrInvalidRegistration)
	case password == "":
		return domain.AuthResult{}, fmt.Errorf("%w: password is required", ErrInvalidRegistration)
	case len(password) > cryptox.MaxPasswordBytes:
		return domain.AuthResult{}, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidRegistration, cryptox.MaxPasswordBytes)
	}

	users := s.Store.Users()

	_, err := users.FindUser(ctx, store.ByEmail(email))
	switch {
	case err == nil:
		l.Info("registration rejected", slog.String("reason", "duplicate_email"))
		return domain.AuthResult{}, ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		l.Error("failed to look up email", slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	user, err := users.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	switch {
	case store.IsConflict(err, "email"):
		l.Info("registration rejected", slog.String("reason", "duplicate_email"))
		return domain.AuthResult{}, ErrDuplicateEmail
	case errors.Is(err, store.ErrAlreadyExists):
		l.Info("registration rejected", slog.String("reason", "conflict"), slog.Any("error", err))
		return domain.AuthResult{}, fmt.Errorf("%w: %w", ErrConflict, err)
	case err != nil:
		l.Error("failed to create user", slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	l.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return domain.AuthResult{User: user.Public(), Token: token}, nil
}

// Authenticate checks a username-or-email and password pair and returns the
// matching user with a fresh token. ErrUserNotFound and ErrIncorrectPassword
// stay distinct; hiding the difference from end users is up to the caller.
func (s *AuthService) Authenticate(ctx context.Context, usernameOrEmail, password string) (domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" {
		return domain.AuthResult{}, fmt.Errorf("%w: usernameOrEmail is required", ErrInvalidCredentials)
	}
	if password == "" {
		return domain.AuthResult{}, fmt.Errorf("%w: password is required", ErrInvalidCredentials)
	}

	user, err := s.Store.Users().FindUser(ctx, store.ByLogin(usernameOrEmail))
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.Info("login failed", slog.String("reason", "user_not_found"))
		return domain.AuthResult{}, ErrUserNotFound
	case err != nil:
		l.Error("failed to look up user", slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	err = cryptox.VerifyPassword(password, user.PasswordHash)
	switch {
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		l.Info("login failed", slog.String("reason", "incorrect_password"), slog.String("user_id", user.ID))
		return domain.AuthResult{}, ErrIncorrectPassword
	case err != nil:
		// A stored digest that bcrypt can't read is an integrity problem.
		l.Error("stored password hash is unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("failed to issue token", slog.String("user_id", user.ID), slog.Any("error", err))
		return domain.AuthResult{}, ErrAuthenticationFailed
	}

	l.Info("user authenticated", slog.String("user_id", user.ID))
	return domain.AuthResult{User: user.Public(), Token: token}, nil
}

// VerifyToken resolves a bearer token to the user it was issued for.
// Tokens of deleted users verify cryptographically but fail with
// ErrUserNotFound.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.User{}, ErrMissingToken
	}

	claims, err := s.Tokens.Verify(token)
	switch {
	case err == nil:
	case isTokenRejection(err):
		l.Info("token rejected", slog.Any("error", err))
		return domain.User{}, ErrInvalidToken
	default:
		l.Error("failed to verify token", slog.Any("error", err))
		return domain.User{}, ErrAuthenticationFailed
	}

	subject, err := idx.Parse(claims.SubjectID())
	if err != nil {
		l.Info("token rejected", slog.String("reason", "invalid_subject"))
		return domain.User{}, ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, subject.String())
	switch {
	case errors.Is(err, store.ErrNotFound):
		l.Info("token subject not found", slog.String("user_id", subject.String()))
		return domain.User{}, ErrUserNotFound
	case err != nil:
		l.Error("failed to load token subject", slog.Any("error", err))
		return domain.User{}, ErrAuthenticationFailed
	}

	return user.Public(), nil
}

// isTokenRejection reports whether err means the token itself is bad, as
// opposed to the verifier failing.
func isTokenRejection(err error) bool {
	for _, target := range []error{
		jwtx.ErrMalformed,
		jwtx.ErrInvalidSig,
		jwtx.ErrAlgMismatch,
		jwtx.ErrIssuer,
		jwtx.ErrExpired,
		jwtx.ErrNotYetValid,
		jwtx.ErrInvalidClaim,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
