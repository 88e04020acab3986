package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a single shared HMAC-SHA256 secret.
// It holds no mutable state and is safe for concurrent use.
type HS256 struct {
	secret []byte
	ttl    time.Duration
	opts   VerifyOptions
}

// NewHS256 returns an HS256 token manager. Issued tokens carry opts.Issuer
// and expire after ttl (never, when ttl is zero).
func NewHS256(secret []byte, ttl time.Duration, opts VerifyOptions) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if ttl < 0 {
		return nil, fmt.Errorf("jwtx: negative token ttl %s", ttl)
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{
		secret: key,
		ttl:    ttl,
		opts:   opts,
	}, nil
}

// TTL reports the lifetime given to issued tokens.
func (m *HS256) TTL() time.Duration { return m.ttl }

// Issue signs a token whose subject is the given user id.
func (m *HS256) Issue(subject string) (string, error) {
	if subject == "" {
		return "", ErrInvalidClaim
	}
	return m.Sign(NewClaims(subject, m.opts.Issuer, m.ttl, time.Now().UTC()))
}

// Sign turns claims into a signed JWT string.
func (m *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks the signature and claims of tokenStr. Every failure wraps
// one of the package sentinels so callers can classify it with errors.Is.
func (m *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(), // checked below against our own clock
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(m.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryWithLeeway(time.Now().UTC(), m.opts.Leeway); err != nil {
		return Claims{}, err
	}
	if claims.SubjectID() == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// WithValidMethods reports a disallowed alg (including "none") here too.
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrAlgMismatch, err)
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
