package combo

import (
	"time"

	"github.com/google/uuid"

	domainFood "foodnest/internal/domain/food"
)

type CreateComboRequest struct {
	Name    string      `json:"name" validate:"required,min=2,max=255"`
	ItemIDs []uuid.UUID `json:"item_ids" validate:"required,min=1,dive,required"`
	Price   float64     `json:"price" validate:"gte=0"`
	Status  string      `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

type UpdateComboRequest struct {
	Name    *string     `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	ItemIDs []uuid.UUID `json:"item_ids,omitempty" validate:"omitempty,min=1,dive,required"`
	Price   *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status  *string     `json:"status,omitempty" validate:"omitempty,oneof=Active Inactive"`
}

// ComboItemSummary is the trimmed food card shown inside a combo listing.
type ComboItemSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	ImageURL *string   `json:"image_url,omitempty"`
}

type ComboResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Items     []ComboItemSummary `json:"items"`
	Price     float64            `json:"price"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func ToComboResponse(c *domainFood.Combo) *ComboResponse {
	items := make([]ComboItemSummary, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ComboItemSummary{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			ImageURL: item.ImageURL,
		})
	}

	return &ComboResponse{
		ID:        c.ID,
		Name:      c.Name,
		Items:     items,
		Price:     c.Price,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
