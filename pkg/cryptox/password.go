package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor (2^10 rounds).
const PasswordCost = 10

// MaxPasswordBytes is the longest password bcrypt will accept.
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
	ErrInvalidHash      = errors.New("invalid hash format")
)

// HashPassword returns a salted bcrypt digest of password. Every call uses a
// fresh salt so the same input never yields the same digest twice.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt digest.
// It returns ErrPasswordMismatch when the password is wrong and an error
// wrapping ErrInvalidHash when the digest itself is not a usable bcrypt hash.
//
// bcrypt only reads the first 72 bytes, so anything longer can never be the
// password that was hashed and is a mismatch.
func VerifyPassword(password, encodedHash string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}
