package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/khata/ledger-api/internal/core/domain"
	"github.com/khata/ledger-api/internal/core/ports"
	"github.com/khata/ledger-api/internal/core/token"
)

func newTestCodec(t *testing.T, ttl time.Duration) *token.Codec {
	t.Helper()
	key, err := token.NewRandomKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return token.NewCodec(key, ttl)
}

func newAuthService(t *testing.T) (*AuthService, *stubAccountRepo, *stubMailer, *token.Codec) {
	t.Helper()
	repo := newStubAccountRepo()
	mailer := newStubMailer()
	codec := newTestCodec(t, time.Hour)
	svc := NewAuthService(repo, codec, &noopVerification{}, mailer, zerolog.Nop())
	return svc, repo, mailer, codec
}

func registerVerified(t *testing.T, svc *AuthService, repo *stubAccountRepo, email, password string) {
	t.Helper()
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Test User",
		Email:    email,
		Password: password,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	account, err := repo.FindByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	account.Verified = true
	if _, err := repo.Update(context.Background(), account); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)

	created, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice",
		Email:    "alice@x.com",
		Password: "pw1234567",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Verified {
		t.Fatalf("new account must start unverified")
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected default role %s, got %s", domain.RoleUser, created.Role)
	}
	if created.PasswordHash == "pw1234567" {
		t.Fatalf("expected password to be hashed")
	}

	stored, err := repo.FindByEmail(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("find account: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1234567")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_TriggersVerification(t *testing.T) {
	repo := newStubAccountRepo()
	verification := &noopVerification{}
	svc := NewAuthService(repo, newTestCodec(t, time.Hour), verification, newStubMailer(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice",
		Email:    "alice@x.com",
		Password: "pw1234567",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(verification.sent) != 1 || verification.sent[0] != "alice@x.com" {
		t.Fatalf("expected verification send for alice@x.com, got %v", verification.sent)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	input := ports.RegisterInput{FullName: "Alice", Email: "alice@x.com", Password: "pw1234567"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _, codec := newAuthService(t)
	registerVerified(t, svc, repo, "alice@x.com", "pw1234567")

	result, err := svc.Login(context.Background(), "alice@x.com", "pw1234567")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Account == nil || result.Account.Email != "alice@x.com" {
		t.Fatalf("unexpected account: %+v", result.Account)
	}

	claims, err := codec.ParseClaims(result.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != "alice@x.com" {
		t.Fatalf("expected subject alice@x.com, got %q", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
}

func TestAuthService_Login_Unverified(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice",
		Email:    "alice@x.com",
		Password: "pw1234567",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@x.com", "pw1234567")
	if !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
	if result != nil {
		t.Fatalf("unverified login must never return a token, got %+v", result)
	}
}

// A wrong password and a nonexistent email must be indistinguishable to the
// caller.
func TestAuthService_Login_NoEnumeration(t *testing.T) {
	svc, repo, _, _ := newAuthService(t)
	registerVerified(t, svc, repo, "alice@x.com", "pw1234567")

	_, wrongPassword := svc.Login(context.Background(), "alice@x.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_AutoLogin(t *testing.T) {
	svc, repo, _, codec := newAuthService(t)
	registerVerified(t, svc, repo, "alice@x.com", "pw1234567")

	result, err := svc.AutoLogin(context.Background(), "alice@x.com")
	if err != nil {
		t.Fatalf("auto login: %v", err)
	}
	claims, err := codec.ParseClaims(result.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != "alice@x.com" {
		t.Fatalf("expected subject alice@x.com, got %q", claims.Subject)
	}
}

func TestAuthService_AutoLogin_Unverified(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Alice",
		Email:    "alice@x.com",
		Password: "pw1234567",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.AutoLogin(context.Background(), "alice@x.com"); !errors.Is(err, domain.ErrAccountNotVerified) {
		t.Fatalf("expected ErrAccountNotVerified, got %v", err)
	}
}

func TestAuthService_PasswordReset(t *testing.T) {
	svc, repo, mailer, _ := newAuthService(t)
	registerVerified(t, svc, repo, "alice@x.com", "pw1234567")

	if err := svc.ForgotPassword(context.Background(), "alice@x.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	resetToken := mailer.lastResetToken("alice@x.com")
	if resetToken == "" {
		t.Fatalf("expected reset token to be mailed")
	}

	if err := svc.ResetPassword(context.Background(), resetToken, "newpass9876"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice@x.com", "pw1234567"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@x.com", "newpass9876"); err != nil {
		t.Fatalf("new password login: %v", err)
	}

	// The token is single use.
	if err := svc.ResetPassword(context.Background(), resetToken, "again12345"); !errors.Is(err, domain.ErrInvalidResetToken) {
		t.Fatalf("expected ErrInvalidResetToken on replay, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, mailer, _ := newAuthService(t)

	// Must not error, must not mail anything.
	if err := svc.ForgotPassword(context.Background(), "ghost@x.com"); err != nil {
		t.Fatalf("forgot password for unknown email: %v", err)
	}
	if tok := mailer.lastResetToken("ghost@x.com"); tok != "" {
		t.Fatalf("expected no mail for unknown email, got token %q", tok)
	}
}
