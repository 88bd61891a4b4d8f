package team

import (
	"time"

	"github.com/google/uuid"
)

// Team groups supervisors, riders and cooks working one station. Membership
// is role-checked: each listed user must actually hold the matching role.
type Team struct {
	ID          uuid.UUID
	Name        string
	Supervisors []uuid.UUID
	Riders      []uuid.UUID
	Cooks       []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
