package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrEmptyFilter   = errors.New("store: empty user filter")
)

// ConflictError reports a uniqueness violation on a single user field.
// It matches ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Field string // "email" or "username"
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: %s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// UserFilter selects a user whose username OR email equals the given value.
// Empty fields take no part in the match; a filter with every field empty is
// rejected with ErrEmptyFilter.
type UserFilter struct {
	Username string
	Email    string
}

// ByEmail matches on email alone.
func ByEmail(email string) UserFilter { return UserFilter{Email: email} }

// ByLogin matches a login identifier against both username and email.
func ByLogin(usernameOrEmail string) UserFilter {
	return UserFilter{Username: usernameOrEmail, Email: usernameOrEmail}
}

func (f UserFilter) IsEmpty() bool { return f.Username == "" && f.Email == "" }

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Users is the Credential Store. Uniqueness of username and email is
// enforced by the backing database, so concurrent creates for the same value
// yield exactly one success and one *ConflictError.
type Users interface {
	// FindUser returns the single user matching filter (username OR email).
	FindUser(ctx context.Context, filter UserFilter) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a new user. The store assigns ID and CreatedAt and
	// returns the stored record.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// DeleteUser removes a user. Tokens already issued for it stay signed but
	// no longer resolve.
	DeleteUser(ctx context.Context, id string) error
}

// IsConflict reports whether err is a uniqueness violation on field.
func IsConflict(err error, field string) bool {
	var c *ConflictError
	return errors.As(err, &c) && c.Field == field
}
