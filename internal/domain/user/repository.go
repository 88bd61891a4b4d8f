package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	GetByRole(ctx context.Context, role string) ([]*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdatePayroll(ctx context.Context, user *User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RegistrationRequestRepository manages pending sign-up requests
type RegistrationRequestRepository interface {
	Create(ctx context.Context, req *RegistrationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*RegistrationRequest, error)
	GetByEmail(ctx context.Context, email string) (*RegistrationRequest, error)
	GetAll(ctx context.Context) ([]*RegistrationRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResetCodeRepository manages password-reset OTP records. Lookups need an
// (email, consumed) path ordered by creation time descending.
type ResetCodeRepository interface {
	Create(ctx context.Context, code *ResetCode) error
	// GetLatestActive returns the most recently created unconsumed code for
	// the email, or ErrResetCodeNotFound.
	GetLatestActive(ctx context.Context, email string) (*ResetCode, error)
	// ConsumeAllForEmail marks every unconsumed code for the email consumed.
	ConsumeAllForEmail(ctx context.Context, email string) error
	// IncrementAttempts applies attempts = attempts + 1 atomically.
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	MarkConsumed(ctx context.Context, id uuid.UUID) error
}
