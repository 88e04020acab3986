package service

import "errors"

// Failure kinds returned by AuthService. Callers classify them with
// errors.Is; the messages are safe to show to clients.
var (
	ErrDuplicateEmail       = errors.New("Email already exists")
	ErrConflict             = errors.New("User already exists")
	ErrUserNotFound         = errors.New("User not found")
	ErrIncorrectPassword    = errors.New("Password is incorrect")
	ErrMissingToken         = errors.New("No token provided")
	ErrInvalidToken         = errors.New("Invalid token")
	ErrAuthenticationFailed = errors.New("Authentication failed")

	// Input validation failures. Returned wrapped with the offending field.
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)
