package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// ValidRole reports whether r is one of the enumerated account roles.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// Account models a registered identity. Email is the unique login subject.
// An unverified account may prove its credentials but never receives a
// session token.
type Account struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Role          string    `json:"role"`
	Verified      bool      `json:"verified"`
	ResetToken    string    `json:"-"`
	Provider      string    `json:"provider,omitempty"`
	ProviderToken string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
