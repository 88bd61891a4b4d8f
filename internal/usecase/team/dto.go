package team

import (
	"time"

	"github.com/google/uuid"

	domainTeam "foodnest/internal/domain/team"
)

type CreateTeamRequest struct {
	Name        string      `json:"name" validate:"required,min=2,max=255"`
	Supervisors []uuid.UUID `json:"supervisors" validate:"omitempty,dive,required"`
	Riders      []uuid.UUID `json:"riders" validate:"omitempty,dive,required"`
	Cooks       []uuid.UUID `json:"cooks" validate:"omitempty,dive,required"`
}

type UpdateTeamRequest struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Supervisors []uuid.UUID `json:"supervisors,omitempty" validate:"omitempty,dive,required"`
	Riders      []uuid.UUID `json:"riders,omitempty" validate:"omitempty,dive,required"`
	Cooks       []uuid.UUID `json:"cooks,omitempty" validate:"omitempty,dive,required"`
}

type TeamResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Supervisors []uuid.UUID `json:"supervisors"`
	Riders      []uuid.UUID `json:"riders"`
	Cooks       []uuid.UUID `json:"cooks"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ToTeamResponse(t *domainTeam.Team) *TeamResponse {
	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Supervisors: t.Supervisors,
		Riders:      t.Riders,
		Cooks:       t.Cooks,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
