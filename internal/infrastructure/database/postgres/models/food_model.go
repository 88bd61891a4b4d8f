package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FoodModel represents the database model for FoodItem
type FoodModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"type:numeric;not null"`
	Category  string    `gorm:"type:varchar(100);not null"`
	Available bool      `gorm:"default:true;not null"`
	Tax       float64   `gorm:"type:numeric;default:0;not null"`

	ImageURL  *string `gorm:"type:text"`
	ImagePath *string `gorm:"type:text"`

	RawMaterials  datatypes.JSON `gorm:"type:jsonb"`
	TotalQuantity datatypes.JSON `gorm:"type:jsonb"`
	PerServing    datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (FoodModel) TableName() string {
	return "food_items"
}

// ComboModel represents the database model for Combo
type ComboModel struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Price     float64     `gorm:"type:numeric;not null"`
	Status    string      `gorm:"type:varchar(20);not null;default:'Active'"`
	Items     []FoodModel `gorm:"many2many:combo_items"`
	CreatedAt time.Time   `gorm:"not null;index"`
	UpdatedAt time.Time   `gorm:"not null"`
}

func (ComboModel) TableName() string {
	return "combos"
}
