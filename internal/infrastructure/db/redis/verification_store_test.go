package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/khata/ledger-api/internal/core/domain"
)

func setupStore(t *testing.T) *VerificationStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewVerificationStore(client)
}

func testEntry(email string) *domain.VerificationEntry {
	return &domain.VerificationEntry{
		Email:     email,
		OTP:       "482913",
		ExpiresAt: time.Now().UTC().Add(10 * time.Minute).Truncate(time.Second),
	}
}

func TestVerificationStore_PutGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := testEntry("alice@x.com")
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OTP != entry.OTP {
		t.Fatalf("expected otp %s, got %s", entry.OTP, got.OTP)
	}
	if !got.ExpiresAt.Equal(entry.ExpiresAt) {
		t.Fatalf("expected expiry %v, got %v", entry.ExpiresAt, got.ExpiresAt)
	}
}

func TestVerificationStore_GetMissing(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Get(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrNoPendingVerification) {
		t.Fatalf("expected ErrNoPendingVerification, got %v", err)
	}
}

func TestVerificationStore_PutReplaces(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := testEntry("alice@x.com")
	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}

	second := testEntry("alice@x.com")
	second.OTP = "123456"
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := store.Get(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OTP != "123456" {
		t.Fatalf("expected replacement otp, got %s", got.OTP)
	}

	// The superseded entry must no longer consume.
	ok, err := store.Consume(ctx, first)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if ok {
		t.Fatalf("expected stale entry not to consume")
	}
}

func TestVerificationStore_ConsumeOnce(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := testEntry("alice@x.com")
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	ok, err := store.Consume(ctx, got)
	if err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if !ok {
		t.Fatalf("expected first consume to succeed")
	}

	ok, err = store.Consume(ctx, got)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if ok {
		t.Fatalf("expected second consume to fail")
	}

	if _, err := store.Get(ctx, "alice@x.com"); !errors.Is(err, domain.ErrNoPendingVerification) {
		t.Fatalf("expected entry to be gone, got %v", err)
	}
}
