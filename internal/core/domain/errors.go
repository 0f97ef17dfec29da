package domain

import "errors"

// Authentication and token errors.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotVerified = errors.New("account is not verified")
	ErrTokenMalformed     = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired       = errors.New("token has expired")
	ErrInvalidResetToken  = errors.New("invalid or already used reset token")
)

// Email verification errors.
var (
	ErrUnknownAccount        = errors.New("no account found with this email")
	ErrAlreadyVerified       = errors.New("this email is already verified")
	ErrNoPendingVerification = errors.New("no verification request found for the provided email")
	ErrOTPMismatch           = errors.New("invalid verification code")
	ErrOTPExpired            = errors.New("the verification code has expired")
)

// Record store errors.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrPartyNotFound    = errors.New("party not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrDuplicatePhone   = errors.New("phone number is already registered")
)
