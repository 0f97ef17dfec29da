package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

// stubAccountRepo is an in-memory AccountRepository keyed by email.
type stubAccountRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{users: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[account.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	for _, u := range r.users {
		if account.PhoneNumber != "" && u.PhoneNumber == account.PhoneNumber {
			return nil, domain.ErrDuplicatePhone
		}
	}
	copy := cloneAccount(account)
	r.nextID++
	copy.ID = strconv.Itoa(r.nextID)
	r.users[copy.Email] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneAccount(u), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return cloneAccount(u), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByResetToken(_ context.Context, token string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if token != "" && u.ResetToken == token {
			return cloneAccount(u), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[account.Email]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	r.users[account.Email] = cloneAccount(account)
	return cloneAccount(account), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) List(_ context.Context, q ports.ListQuery) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.Account, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneAccount(u))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return pageSlice(all, q), int64(len(all)), nil
}

func (r *stubAccountRepo) SearchByName(_ context.Context, keyword string, q ports.ListQuery) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Account
	for _, u := range r.users {
		if containsFold(u.FullName, keyword) {
			matched = append(matched, cloneAccount(u))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageSlice(matched, q), int64(len(matched)), nil
}

func pageSlice(all []*domain.Account, q ports.ListQuery) []*domain.Account {
	start := int(q.Offset())
	if start >= len(all) {
		return nil
	}
	end := start + q.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	lower := func(b byte) byte {
		if 'A' <= b && b <= 'Z' {
			return b + 'a' - 'A'
		}
		return b
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		ok := true
		for j := 0; j < len(substr); j++ {
			if lower(s[i+j]) != lower(substr[j]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// stubVerificationStore is an in-memory VerificationStore with the same
// replace-and-consume-once semantics as the Redis implementation.
type stubVerificationStore struct {
	mu      sync.Mutex
	entries map[string]domain.VerificationEntry
}

func newStubVerificationStore() *stubVerificationStore {
	return &stubVerificationStore{entries: make(map[string]domain.VerificationEntry)}
}

func (s *stubVerificationStore) Put(_ context.Context, entry *domain.VerificationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Email] = *entry
	return nil
}

func (s *stubVerificationStore) Get(_ context.Context, email string) (*domain.VerificationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[email]; ok {
		copy := e
		return &copy, nil
	}
	return nil, domain.ErrNoPendingVerification
}

func (s *stubVerificationStore) Consume(_ context.Context, entry *domain.VerificationEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.entries[entry.Email]
	if !ok || stored != *entry {
		return false, nil
	}
	delete(s.entries, entry.Email)
	return true, nil
}

// stubMailer records dispatched mail.
type stubMailer struct {
	mu          sync.Mutex
	otps        map[string]string
	resetTokens map[string]string
	failSend    bool
}

func newStubMailer() *stubMailer {
	return &stubMailer{otps: make(map[string]string), resetTokens: make(map[string]string)}
}

func (m *stubMailer) SendVerificationCode(_ context.Context, email, otp string, _ time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend {
		return context.DeadlineExceeded
	}
	m.otps[email] = otp
	return nil
}

func (m *stubMailer) SendPasswordReset(_ context.Context, email, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetTokens[email] = resetToken
	return nil
}

func (m *stubMailer) lastOTP(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.otps[email]
}

func (m *stubMailer) lastResetToken(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resetTokens[email]
}

// noopVerification satisfies ports.VerificationService for auth tests that
// do not care about the mail side effect.
type noopVerification struct{ sent []string }

func (v *noopVerification) Send(_ context.Context, email string) error {
	v.sent = append(v.sent, email)
	return nil
}

func (v *noopVerification) Verify(context.Context, string, string) error { return nil }
