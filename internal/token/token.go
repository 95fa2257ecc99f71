// Package token issues and verifies the signed access tokens used to
// authenticate API requests. Tokens are stateless: the server verifies
// them but never stores them, so there is no revocation list.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification errors. The two cases map to distinct HTTP statuses, so
// callers must be able to tell them apart with errors.Is.
var (
	// ErrTokenExpired means the token was valid but its validity
	// window has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed means the token is structurally invalid or its
	// signature does not validate.
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the decoded payload of a verified token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 tokens with a process-wide secret.
// The zero value is not usable; construct with NewCodec.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec. The secret must be non-empty; configuration
// enforces that before the process accepts traffic.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Test use only.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue produces a signed token for the given subject with the codec's
// configured TTL.
func (c *Codec) Issue(subject string) (string, error) {
	now := c.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token string.
// Returns ErrTokenExpired when the validity window has passed and
// ErrTokenMalformed for every other validation failure. Signature
// comparison is constant-time inside the HMAC verification.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &jwt.RegisteredClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if !tok.Valid {
		return nil, ErrTokenMalformed
	}

	decoded := &Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		decoded.ExpiresAt = claims.ExpiresAt.Time
	}

	return decoded, nil
}
