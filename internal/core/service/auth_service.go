package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/khata/ledger-api/internal/api/metrics"
	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
	"github.com/khata/ledger-api/internal/core/token"
)

// AuthService composes credential verification, the verified-account gate,
// and token issuance.
type AuthService struct {
	accounts     ports.AccountRepository
	codec        *token.Codec
	verification ports.VerificationService
	mailer       ports.MailSender
	logger       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	codec *token.Codec,
	verification ports.VerificationService,
	mailer ports.MailSender,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts:     accounts,
		codec:        codec,
		verification: verification,
		mailer:       mailer,
		logger:       logger,
	}
}

// Register creates an unverified account with a hashed password and triggers
// the verification email. A failure to send the code does not fail the
// registration; the client can always request a resend.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := s.verification.Send(ctx, created.Email); err != nil {
		s.logger.Warn().Err(err).Str("email", created.Email).Msg("failed to send verification code after registration")
	}

	s.logger.Info().Str("email", created.Email).Msg("account registered")
	return created, nil
}

// Login checks credentials, requires a verified account, and issues a session
// token. An unknown email and a wrong password surface the same
// ErrInvalidCredentials so callers cannot enumerate registered addresses.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !account.Verified {
		metrics.LoginAttemptsTotal.WithLabelValues("not_verified").Inc()
		s.logger.Info().Str("email", email).Msg("login attempt on unverified account")
		return nil, domain.ErrAccountNotVerified
	}

	return s.issue(account)
}

// AutoLogin issues a token for a verified account without re-checking the
// password. It backs the auto-login right after a successful OTP
// verification and is never exposed as its own endpoint.
func (s *AuthService) AutoLogin(ctx context.Context, email string) (*ports.AuthResult, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !account.Verified {
		return nil, domain.ErrAccountNotVerified
	}
	return s.issue(account)
}

// ForgotPassword stores a fresh reset token on the account and mails it.
// Unknown addresses are ignored so the endpoint does not reveal which emails
// are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Info().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	account.ResetToken = uuid.NewString()
	account.UpdatedAt = time.Now().UTC()
	if _, err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	return s.mailer.SendPasswordReset(ctx, account.Email, account.ResetToken)
}

// ResetPassword re-hashes the password for the account holding the reset
// token and clears the token so it cannot be replayed.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return domain.ErrInvalidResetToken
	}

	account, err := s.accounts.FindByResetToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	account.PasswordHash = string(hash)
	account.ResetToken = ""
	account.UpdatedAt = time.Now().UTC()
	if _, err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	s.logger.Info().Str("email", account.Email).Msg("password reset completed")
	return nil
}

func (s *AuthService) issue(account *domain.Account) (*ports.AuthResult, error) {
	tok, err := s.codec.Issue(account.Email, []string{account.Role})
	if err != nil {
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", account.Email).Msg("session token issued")

	return &ports.AuthResult{Token: tok, Account: account}, nil
}
