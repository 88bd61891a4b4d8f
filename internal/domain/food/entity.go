package food

import (
	"time"

	"github.com/google/uuid"
)

// RawMaterial is one ingredient line on a food card
type RawMaterial struct {
	Name string   `json:"name"`
	Qty  *float64 `json:"qty,omitempty"`
	Unit string   `json:"unit,omitempty"`
}

// Quantity is an amount with a unit (batch total or per serving)
type Quantity struct {
	Amount *float64 `json:"amount,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// FoodItem represents a menu item entity in the domain
type FoodItem struct {
	ID        uuid.UUID
	Name      string
	Price     float64
	Category  string
	Available bool
	Tax       float64

	ImageURL  *string
	ImagePath *string

	RawMaterials  []RawMaterial
	TotalQuantity *Quantity
	PerServing    *Quantity

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	ComboStatusActive   = "Active"
	ComboStatusInactive = "Inactive"
)

// Combo bundles several food items at one price
type Combo struct {
	ID        uuid.UUID
	Name      string
	Items     []*FoodItem
	Price     float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
