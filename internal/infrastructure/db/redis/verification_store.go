package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khata/ledger-api/internal/core/domain"
)

// entryTTL is a hygiene bound only. Code expiry is judged from the entry's
// own expires_at so a stale-but-present code still reports "expired" rather
// than "no pending verification".
const entryTTL = 24 * time.Hour

// consumeScript deletes the key only while it still holds the exact entry the
// caller read. Two concurrent verifications both read the entry, but only the
// first delete returns 1; the loser sees 0 and must fail.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// VerificationStore keeps the single live verification entry per email in
// Redis. Key format: verify:<email>
type VerificationStore struct {
	client *redis.Client
}

func NewVerificationStore(client *redis.Client) *VerificationStore {
	return &VerificationStore{client: client}
}

// Put stores the entry, replacing any pending entry for the same email.
func (s *VerificationStore) Put(ctx context.Context, entry *domain.VerificationEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode verification entry: %w", err)
	}
	if err := s.client.Set(ctx, s.key(entry.Email), payload, entryTTL).Err(); err != nil {
		return fmt.Errorf("store verification entry: %w", err)
	}
	return nil
}

// Get returns the pending entry for the email.
func (s *VerificationStore) Get(ctx context.Context, email string) (*domain.VerificationEntry, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoPendingVerification
		}
		return nil, fmt.Errorf("load verification entry: %w", err)
	}

	var entry domain.VerificationEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode verification entry: %w", err)
	}
	return &entry, nil
}

// Consume deletes the entry only if it is still the stored one. json.Marshal
// is deterministic for a fixed struct, so re-encoding the entry reproduces
// the stored bytes exactly.
func (s *VerificationStore) Consume(ctx context.Context, entry *domain.VerificationEntry) (bool, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return false, fmt.Errorf("encode verification entry: %w", err)
	}

	deleted, err := consumeScript.Run(ctx, s.client, []string{s.key(entry.Email)}, string(payload)).Int()
	if err != nil {
		return false, fmt.Errorf("consume verification entry: %w", err)
	}
	return deleted == 1, nil
}

func (s *VerificationStore) key(email string) string {
	return "verify:" + email
}
