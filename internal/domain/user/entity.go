package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleSuperadmin = "superadmin"
	RoleRider      = "rider"
	RoleCook       = "cook"
	RoleSupervisor = "supervisor"
	RoleRefill     = "refill"
)

// Roles lists every role an account may hold.
var Roles = []string{RoleSuperadmin, RoleRider, RoleCook, RoleSupervisor, RoleRefill}

// RequestableRoles lists the roles open to self-service registration.
var RequestableRoles = []string{RoleRider, RoleCook, RoleSupervisor, RoleRefill}

// User represents an account in the domain
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	Disabled     bool

	// Payroll fields, all optional. BankEnc holds bank details encrypted
	// at rest; plaintext is never persisted.
	Currency       *string
	BaseSalary     *float64
	PayFrequency   *string
	EmploymentType *string
	VAT            *float64
	EffectiveFrom  *time.Time
	OTEligible     *bool
	OTRate         *float64
	Allowances     *float64
	Deductions     *float64
	TaxID          *string
	BankEnc        *string
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegistrationRequest is a pending self-service sign-up awaiting superadmin
// approval. The password is hashed at submission time and carried over to the
// created account verbatim.
type RegistrationRequest struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

// ResetCode is one password-reset OTP record. Records are append-only: a code
// leaves circulation by having Consumed flipped, never by deletion. At most
// one unconsumed code per email is treated as active at any time.
type ResetCode struct {
	ID        uuid.UUID
	Email     string
	Code      string
	ExpiresAt time.Time
	Attempts  int
	Consumed  bool
	CreatedAt time.Time
}

// IsExpired reports whether the code's TTL has elapsed.
func (rc *ResetCode) IsExpired(now time.Time) bool {
	return now.After(rc.ExpiresAt)
}

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if role == r {
			return true
		}
	}
	return false
}
