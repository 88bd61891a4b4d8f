package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Disabled     bool      `gorm:"default:false;not null"`

	Currency       *string    `gorm:"type:varchar(10)"`
	BaseSalary     *float64   `gorm:"type:numeric"`
	PayFrequency   *string    `gorm:"type:varchar(20)"`
	EmploymentType *string    `gorm:"type:varchar(30)"`
	VAT            *float64   `gorm:"type:numeric"`
	EffectiveFrom  *time.Time `gorm:"type:timestamp"`
	OTEligible     *bool
	OTRate         *float64 `gorm:"type:numeric"`
	Allowances     *float64 `gorm:"type:numeric"`
	Deductions     *float64 `gorm:"type:numeric"`
	TaxID          *string  `gorm:"type:varchar(100)"`
	BankEnc        *string  `gorm:"type:text"`
	Notes          *string  `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// RegistrationRequestModel represents the database model for RegistrationRequest
type RegistrationRequestModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (RegistrationRequestModel) TableName() string {
	return "registration_requests"
}

// ResetCodeModel represents the database model for password-reset codes.
// Rows are never deleted; consumed marks a code out of circulation. The
// composite index serves the "latest unconsumed per email" lookup.
type ResetCodeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);not null;index:idx_reset_email_consumed"`
	Code      string    `gorm:"type:varchar(12);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"default:0;not null"`
	Consumed  bool      `gorm:"default:false;not null;index:idx_reset_email_consumed"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ResetCodeModel) TableName() string {
	return "password_reset_codes"
}
