package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"max length password", strings.Repeat("a", MaxPasswordBytes)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hash)
			require.NotEqual(t, tt.password, hash)
			require.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be bcrypt encoded")

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			require.Equal(t, PasswordCost, cost)

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	t.Parallel()

	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)
	hash2, err := HashPassword(password)
	require.NoError(t, err)

	// Fresh salt each call, but both still verify.
	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword(password, hash1))
	require.NoError(t, VerifyPassword(password, hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
	} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, "input %q", wrong)
	}
}

func TestVerifyPassword_BeyondMaxLength(t *testing.T) {
	t.Parallel()

	password := strings.Repeat("a", MaxPasswordBytes)
	hash, err := HashPassword(password)
	require.NoError(t, err)

	require.NoError(t, VerifyPassword(password, hash))
	require.ErrorIs(t, VerifyPassword(password+"x", hash), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword(password+"WRONG-SUFFIX", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"too short", "$2a$10$abc"},
		{"argon2 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"plaintext", "test-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("test-password", tt.invalidHash)
			require.ErrorIs(t, err, ErrInvalidHash)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
			require.NotContains(t, err.Error(), "test-password")
		})
	}
}
