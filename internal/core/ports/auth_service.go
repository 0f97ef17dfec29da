package ports

import (
	"context"

	"github.com/khata/ledger-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	Role        string
}

// AuthResult bundles an issued session token with a public-safe account
// summary. The account's sensitive fields are never serialized.
type AuthResult struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

// AuthService implements registration, login, and post-verification login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// AutoLogin issues a token for an already verified account without a
	// password check. Only callable internally right after a successful OTP
	// verification; never routed as a standalone endpoint.
	AutoLogin(ctx context.Context, email string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// VerificationService implements the email-OTP verification workflow.
type VerificationService interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, otp string) error
}
