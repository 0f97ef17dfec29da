// Package mail implements the MailSender port. Transport and templating are
// a collaborator concern; the default implementation writes the outbound
// message to the structured log, which is what development and test
// environments run with.
package mail

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LogSender logs outbound mail instead of delivering it.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendVerificationCode(ctx context.Context, email, otp string, expiresAt time.Time) error {
	s.logger.Info().
		Str("to", email).
		Str("otp", otp).
		Time("expires_at", expiresAt).
		Msg("verification code mail")
	return nil
}

func (s *LogSender) SendPasswordReset(ctx context.Context, email, resetToken string) error {
	s.logger.Info().
		Str("to", email).
		Str("reset_token", resetToken).
		Msg("password reset mail")
	return nil
}
