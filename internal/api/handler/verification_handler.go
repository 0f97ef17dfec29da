package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khata/ledger-api/internal/core/ports"
)

// VerificationHandler handles the email-OTP verification endpoints.
type VerificationHandler struct {
	verification ports.VerificationService
	authService  ports.AuthService
}

func NewVerificationHandler(verification ports.VerificationService, authService ports.AuthService) *VerificationHandler {
	return &VerificationHandler{verification: verification, authService: authService}
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type resendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Verify consumes the submitted OTP and, on success, logs the account in
// without a password round trip.
func (h *VerificationHandler) Verify(c echo.Context) error {
	var req verifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.verification.Verify(ctx, req.Email, req.OTP); err != nil {
		return err
	}

	result, err := h.authService.AutoLogin(ctx, req.Email)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Email verified successfully", result)
}

// Resend issues a fresh verification code, replacing any pending one.
func (h *VerificationHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verification.Send(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Verification email sent successfully", nil)
}
