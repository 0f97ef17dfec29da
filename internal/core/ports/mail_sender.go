package ports

import (
	"context"
	"time"
)

// MailSender dispatches transactional mail. Templating and transport are the
// collaborator's concern.
type MailSender interface {
	SendVerificationCode(ctx context.Context, email, otp string, expiresAt time.Time) error
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}
