package domain

import "time"

// VerificationEntry is the single outstanding email-verification code for an
// address. Creating a new entry replaces any pending one; consumption deletes
// the entry outright, so no used flag is tracked and a consumed code can
// never succeed twice. Expiry is judged lazily at verification time, stale
// entries are not swept.
type VerificationEntry struct {
	Email     string    `json:"email"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry's code is past its expiry at the given time.
func (e *VerificationEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}
