package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime given to bearer tokens when the service
// is not configured otherwise.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the bearer token claims. The subject user id is carried twice:
// as the registered "sub" claim and as "id", which is what older verifiers of
// this service read.
type Claims struct {
	jwt.RegisteredClaims

	// UserID of the token subject.
	UserID string `json:"id"`
}

// NewClaims builds claims for subject issued at now. A ttl of zero leaves the
// token without an "exp" claim.
func NewClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: subject,
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return c
}

// SubjectID returns the user id the token asserts, or "" if the claims
// disagree about it.
func (c *Claims) SubjectID() string {
	switch {
	case c.UserID == "":
		return c.Subject
	case c.Subject == "" || c.Subject == c.UserID:
		return c.UserID
	default:
		return ""
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiryWithLeeway ensures the token hasn't expired (exp) and isn't
// used before nbf, allowing leeway for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
