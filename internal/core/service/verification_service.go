package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/khata/ledger-api/internal/api/metrics"
	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
)

const otpValidity = 10 * time.Minute

// VerificationService generates, stores, and consumes one-time email
// verification codes. One live code per email: a resend replaces any pending
// code, a successful verification deletes it.
type VerificationService struct {
	accounts ports.AccountRepository
	store    ports.VerificationStore
	mailer   ports.MailSender
	logger   zerolog.Logger
}

func NewVerificationService(
	accounts ports.AccountRepository,
	store ports.VerificationStore,
	mailer ports.MailSender,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{accounts: accounts, store: store, mailer: mailer, logger: logger}
}

// Send issues a fresh 6-digit code for an existing, not yet verified account
// and dispatches it by mail. Any previously pending code for the email stops
// verifying from this point on.
func (s *VerificationService) Send(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrUnknownAccount
		}
		return err
	}
	if account.Verified {
		return domain.ErrAlreadyVerified
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}
	entry := &domain.VerificationEntry{
		Email:     email,
		OTP:       otp,
		ExpiresAt: time.Now().UTC().Add(otpValidity),
	}
	if err := s.store.Put(ctx, entry); err != nil {
		return fmt.Errorf("store verification entry: %w", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, email, entry.OTP, entry.ExpiresAt); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}

	metrics.OTPSentTotal.Inc()
	s.logger.Info().Str("email", email).Time("expires_at", entry.ExpiresAt).Msg("verification code sent")
	return nil
}

// Verify checks the submitted code against the pending entry, consumes the
// entry, and marks the account verified. The consume step only succeeds if
// the entry is still the stored one, so two concurrent verifications for the
// same email cannot both pass.
func (s *VerificationService) Verify(ctx context.Context, email, otp string) error {
	entry, err := s.store.Get(ctx, email)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("no_pending").Inc()
		return err
	}

	if entry.OTP != otp {
		metrics.OTPVerificationsTotal.WithLabelValues("mismatch").Inc()
		return domain.ErrOTPMismatch
	}
	if entry.Expired(time.Now().UTC()) {
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return domain.ErrOTPExpired
	}

	consumed, err := s.store.Consume(ctx, entry)
	if err != nil {
		return fmt.Errorf("consume verification entry: %w", err)
	}
	if !consumed {
		metrics.OTPVerificationsTotal.WithLabelValues("no_pending").Inc()
		return domain.ErrNoPendingVerification
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrUnknownAccount
		}
		return err
	}

	account.Verified = true
	account.UpdatedAt = time.Now().UTC()
	if _, err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", email).Msg("email verified")
	return nil
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
// A crypto/rand failure is surfaced rather than degraded into a weaker code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
