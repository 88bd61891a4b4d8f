package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserDisabled      = errors.New("user account is disabled")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password does not meet requirements")

	// Password reset taxonomy. NoActiveCode, CodeExpired and CodeMismatch
	// collapse to one public message at the HTTP layer; TooManyAttempts is
	// surfaced distinctly because the remedy is requesting a fresh code.
	ErrNoActiveCode    = errors.New("no active reset code")
	ErrCodeExpired     = errors.New("reset code has expired")
	ErrCodeMismatch    = errors.New("reset code does not match")
	ErrTooManyAttempts = errors.New("too many reset attempts")
	ErrUnknownAccount  = errors.New("unknown account")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
