package food

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainFood "foodnest/internal/domain/food"
	appErrors "foodnest/pkg/errors"
)

// Create and update requests arrive as multipart forms; the structured
// fields (raw materials, quantities) are JSON-encoded form values.
type CreateFoodRequest struct {
	Name          string   `form:"name" validate:"required,min=2,max=255"`
	Price         float64  `form:"price" validate:"gte=0"`
	Category      string   `form:"category" validate:"required,min=2,max=100"`
	Available     *bool    `form:"available"`
	Tax           float64  `form:"tax" validate:"gte=0"`
	RawMaterials  string   `form:"raw_materials"`
	TotalQuantity string   `form:"total_quantity"`
	PerServing    string   `form:"per_serving"`
}

type UpdateFoodRequest struct {
	Name          *string  `form:"name" validate:"omitempty,min=2,max=255"`
	Price         *float64 `form:"price" validate:"omitempty,gte=0"`
	Category      *string  `form:"category" validate:"omitempty,min=2,max=100"`
	Available     *bool    `form:"available"`
	Tax           *float64 `form:"tax" validate:"omitempty,gte=0"`
	RawMaterials  *string  `form:"raw_materials"`
	TotalQuantity *string  `form:"total_quantity"`
	PerServing    *string  `form:"per_serving"`
}

type FoodResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Price         float64                  `json:"price"`
	Category      string                   `json:"category"`
	Available     bool                     `json:"available"`
	Tax           float64                  `json:"tax"`
	ImageURL      *string                  `json:"image_url,omitempty"`
	RawMaterials  []domainFood.RawMaterial `json:"raw_materials"`
	TotalQuantity *domainFood.Quantity     `json:"total_quantity,omitempty"`
	PerServing    *domainFood.Quantity     `json:"per_serving,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func ToFoodResponse(item *domainFood.FoodItem) *FoodResponse {
	return &FoodResponse{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		Category:      item.Category,
		Available:     item.Available,
		Tax:           item.Tax,
		ImageURL:      item.ImageURL,
		RawMaterials:  item.RawMaterials,
		TotalQuantity: item.TotalQuantity,
		PerServing:    item.PerServing,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func parseRawMaterials(encoded string) ([]domainFood.RawMaterial, error) {
	if encoded == "" {
		return nil, nil
	}
	var materials []domainFood.RawMaterial
	if err := json.Unmarshal([]byte(encoded), &materials); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "raw_materials must be a JSON array", err)
	}
	return materials, nil
}

func parseQuantity(encoded, field string) (*domainFood.Quantity, error) {
	if encoded == "" {
		return nil, nil
	}
	var quantity domainFood.Quantity
	if err := json.Unmarshal([]byte(encoded), &quantity); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", field+" must be a JSON object", err)
	}
	return &quantity, nil
}
