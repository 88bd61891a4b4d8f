package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserDisabled      = errors.New("user account is disabled")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrRequestNotFound      = errors.New("registration request not found")
	ErrRequestAlreadyExists = errors.New("registration request already submitted")

	ErrResetCodeNotFound = errors.New("reset code not found")
)
