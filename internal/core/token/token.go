// Package token encodes and decodes signed session claims. Tokens are
// self-contained: the only server-side state is the HS256 signing key, so
// every token issued by a prior process generation becomes unverifiable
// after a restart.
package token

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khata/ledger-api/internal/core/domain"
)

const defaultTTL = 15 * time.Minute

// Claims is the typed payload carried inside a session token.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session tokens with a process-wide symmetric key.
// It is safe for concurrent use; the key is read-only after construction.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec builds a codec with the given validity window. A zero ttl falls
// back to the default; a negative ttl is honored and issues already-expired
// tokens.
func NewCodec(key []byte, ttl time.Duration) *Codec {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Codec{key: key, ttl: ttl}
}

// NewRandomKey generates a 256-bit signing key. Used when no key is
// configured; tokens signed with it do not survive a restart.
func NewRandomKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

// Issue signs a claim set for the subject with issuedAt = now and
// expiresAt = now + the codec's validity window.
func (c *Codec) Issue(subject string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// ParseClaims verifies the signature and structure of a token and returns its
// claims. It fails with domain.ErrTokenExpired when the token is past its
// expiry and domain.ErrTokenMalformed for every other defect, so callers can
// word 401 responses differently for stale versus forged tokens.
func (c *Codec) ParseClaims(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	// Checked explicitly as well, not only through library validation.
	if claims.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}
	if time.Now().After(claims.ExpiresAt.Time) {
		return nil, domain.ErrTokenExpired
	}
	return claims, nil
}

// IsValid reports whether the token parses, carries the expected subject, and
// has not expired.
func (c *Codec) IsValid(raw, expectedSubject string) bool {
	claims, err := c.ParseClaims(raw)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
