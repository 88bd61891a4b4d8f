package prep

import (
	"time"

	"github.com/google/uuid"

	domainPrep "foodnest/internal/domain/prep"
)

type CreatePrepRequest struct {
	FoodID            uuid.UUID `json:"food_id" validate:"required"`
	CookID            uuid.UUID `json:"cook_id" validate:"required"`
	QuantityToPrepare int       `json:"quantity_to_prepare" validate:"required,gt=0"`
	Notes             string    `json:"notes" validate:"max=2000"`
}

type UpdatePrepRequest struct {
	Status            *string `json:"status,omitempty" validate:"omitempty,oneof=queued processing ready picked"`
	QuantityToPrepare *int    `json:"quantity_to_prepare,omitempty" validate:"omitempty,gt=0"`
	Notes             *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type ListFilter struct {
	CookID *uuid.UUID
	Status *string
}

type PrepResponse struct {
	ID                uuid.UUID               `json:"id"`
	FoodID            uuid.UUID               `json:"food_id"`
	FoodSnapshot      domainPrep.FoodSnapshot `json:"food_snapshot"`
	CookID            uuid.UUID               `json:"cook_id"`
	RequestedBy       uuid.UUID               `json:"requested_by"`
	Status            domainPrep.Status       `json:"status"`
	QuantityToPrepare int                     `json:"quantity_to_prepare"`
	Notes             string                  `json:"notes,omitempty"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

func ToPrepResponse(r *domainPrep.PrepRequest) *PrepResponse {
	return &PrepResponse{
		ID:                r.ID,
		FoodID:            r.FoodID,
		FoodSnapshot:      r.FoodSnapshot,
		CookID:            r.CookID,
		RequestedBy:       r.RequestedBy,
		Status:            r.Status,
		QuantityToPrepare: r.QuantityToPrepare,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
