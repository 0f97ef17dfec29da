package ports

import (
	"context"

	"github.com/khata/ledger-api/internal/core/domain"
)

// VerificationStore holds at most one live verification entry per email.
type VerificationStore interface {
	// Put stores the entry, replacing any pending entry for the same email.
	Put(ctx context.Context, entry *domain.VerificationEntry) error
	// Get returns the pending entry for the email, or
	// domain.ErrNoPendingVerification when none exists.
	Get(ctx context.Context, email string) (*domain.VerificationEntry, error)
	// Consume atomically deletes the entry only if it is still the stored one.
	// It returns false when the entry was already consumed or replaced, which
	// is how a lost race between two concurrent verifications surfaces.
	Consume(ctx context.Context, entry *domain.VerificationEntry) (bool, error)
}
