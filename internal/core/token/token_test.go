package token

import (
	"errors"
	"testing"
	"time"

	"github.com/khata/ledger-api/internal/core/domain"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := NewRandomKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestCodec_IssueAndParse(t *testing.T) {
	codec := NewCodec(testKey(t), time.Hour)

	raw, err := codec.Issue("alice@x.com", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.ParseClaims(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice@x.com" {
		t.Fatalf("expected subject alice@x.com, got %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatalf("expected issuedAt and expiresAt to be set")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h validity window, got %v", got)
	}
}

func TestNewCodec_TTLDefaults(t *testing.T) {
	// Zero falls back to the default window.
	codec := NewCodec(testKey(t), 0)
	raw, err := codec.Issue("alice@x.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.ParseClaims(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != defaultTTL {
		t.Fatalf("expected default validity window %v, got %v", defaultTTL, got)
	}

	// A negative window is honored, the token comes out already expired.
	expiredCodec := NewCodec(testKey(t), -time.Minute)
	raw, err = expiredCodec.Issue("alice@x.com", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := expiredCodec.ParseClaims(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_ParseExpired(t *testing.T) {
	codec := NewCodec(testKey(t), -time.Minute)

	raw, err := codec.Issue("alice@x.com", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.ParseClaims(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_ParseMalformed(t *testing.T) {
	codec := NewCodec(testKey(t), time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := codec.ParseClaims(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestCodec_ParseWrongKey(t *testing.T) {
	issuer := NewCodec(testKey(t), time.Hour)
	verifier := NewCodec(testKey(t), time.Hour)

	raw, err := issuer.Issue("alice@x.com", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A token from another key generation must read as forged, not expired.
	if _, err := verifier.ParseClaims(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_IsValid(t *testing.T) {
	codec := NewCodec(testKey(t), time.Hour)

	raw, err := codec.Issue("alice@x.com", []string{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if !codec.IsValid(raw, "alice@x.com") {
		t.Fatalf("expected token to be valid for its subject")
	}
	if codec.IsValid(raw, "mallory@x.com") {
		t.Fatalf("expected token to be invalid for another subject")
	}
	if codec.IsValid("garbage", "alice@x.com") {
		t.Fatalf("expected malformed token to be invalid")
	}
}

func TestCodec_IsValidExpired(t *testing.T) {
	codec := NewCodec(testKey(t), -time.Second)

	raw, err := codec.Issue("alice@x.com", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if codec.IsValid(raw, "alice@x.com") {
		t.Fatalf("expected expired token to be invalid")
	}
}
