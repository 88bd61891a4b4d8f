package prep

import "errors"

var (
	ErrRequestNotFound         = errors.New("prep request not found")
	ErrInvalidStatus           = errors.New("invalid prep request status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
