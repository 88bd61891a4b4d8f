package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "foodnest/internal/domain/user"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Role     string `json:"role" validate:"required,user_role"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Role     *string `json:"role,omitempty" validate:"omitempty,user_role"`
	Disabled *bool   `json:"disabled,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Disabled  bool      `json:"disabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPickerResponse is the trimmed listing used by role-filtered pickers.
type UserPickerResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  string    `json:"role"`
}

// BankDetails is the plaintext shape of the encrypted bank blob.
type BankDetails struct {
	BankName      string `json:"bank_name,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	RoutingCode   string `json:"routing_code,omitempty"`
}

type UpdatePayrollRequest struct {
	Currency       *string      `json:"currency,omitempty" validate:"omitempty,len=3"`
	BaseSalary     *float64     `json:"base_salary,omitempty" validate:"omitempty,gte=0"`
	PayFrequency   *string      `json:"pay_frequency,omitempty" validate:"omitempty,oneof=monthly biweekly weekly"`
	EmploymentType *string      `json:"employment_type,omitempty" validate:"omitempty,oneof=fulltime parttime contract"`
	VAT            *float64     `json:"vat,omitempty" validate:"omitempty,gte=0"`
	EffectiveFrom  *time.Time   `json:"effective_from,omitempty"`
	OTEligible     *bool        `json:"ot_eligible,omitempty"`
	OTRate         *float64     `json:"ot_rate,omitempty" validate:"omitempty,gte=0"`
	Allowances     *float64     `json:"allowances,omitempty" validate:"omitempty,gte=0"`
	Deductions     *float64     `json:"deductions,omitempty" validate:"omitempty,gte=0"`
	TaxID          *string      `json:"tax_id,omitempty"`
	Bank           *BankDetails `json:"bank,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
}

// PayrollResponse mirrors the stored payroll fields. Bank details are
// decrypted for the response with the account number masked.
type PayrollResponse struct {
	UserID         uuid.UUID    `json:"user_id"`
	Currency       *string      `json:"currency,omitempty"`
	BaseSalary     *float64     `json:"base_salary,omitempty"`
	PayFrequency   *string      `json:"pay_frequency,omitempty"`
	EmploymentType *string      `json:"employment_type,omitempty"`
	VAT            *float64     `json:"vat,omitempty"`
	EffectiveFrom  *time.Time   `json:"effective_from,omitempty"`
	OTEligible     *bool        `json:"ot_eligible,omitempty"`
	OTRate         *float64     `json:"ot_rate,omitempty"`
	Allowances     *float64     `json:"allowances,omitempty"`
	Deductions     *float64     `json:"deductions,omitempty"`
	TaxID          *string      `json:"tax_id,omitempty"`
	Bank           *BankDetails `json:"bank,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
}

type RegistrationRequestResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Disabled:  u.Disabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func ToUserPickerResponse(u *domainUser.User) *UserPickerResponse {
	return &UserPickerResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func ToRegistrationRequestResponse(r *domainUser.RegistrationRequest) *RegistrationRequestResponse {
	return &RegistrationRequestResponse{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}
