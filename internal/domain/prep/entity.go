package prep

import (
	"time"

	"github.com/google/uuid"

	"foodnest/internal/domain/food"
)

// Status of a preparation request
type Status string

const (
	StatusQueued     Status = "queued"     // Supervisor sent the card to a cook
	StatusProcessing Status = "processing" // Cook started preparing
	StatusReady      Status = "ready"      // Batch is ready for pickup
	StatusPicked     Status = "picked"     // Rider/refill picked it up
)

// FoodSnapshot is an immutable copy of the food card taken when the request
// was sent; later edits to the menu item do not affect it.
type FoodSnapshot struct {
	Name          string              `json:"name"`
	Price         float64             `json:"price"`
	Category      string              `json:"category"`
	Tax           float64             `json:"tax"`
	Available     bool                `json:"available"`
	ImageURL      *string             `json:"image_url,omitempty"`
	RawMaterials  []food.RawMaterial  `json:"raw_materials"`
	TotalQuantity *food.Quantity      `json:"total_quantity,omitempty"`
	PerServing    *food.Quantity      `json:"per_serving,omitempty"`
}

// PrepRequest represents a preparation order handed to a cook
type PrepRequest struct {
	ID                uuid.UUID
	FoodID            uuid.UUID
	FoodSnapshot      FoodSnapshot
	CookID            uuid.UUID
	RequestedBy       uuid.UUID
	Status            Status
	QuantityToPrepare int
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
