package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrepRequestModel represents the database model for PrepRequest. The food
// snapshot is denormalized jsonb so menu edits never rewrite history.
type PrepRequestModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FoodID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	FoodSnapshot      datatypes.JSON `gorm:"type:jsonb;not null"`
	CookID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_prep_cook_status"`
	RequestedBy       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status            string         `gorm:"type:varchar(20);not null;default:'queued';index:idx_prep_cook_status"`
	QuantityToPrepare int            `gorm:"default:0;not null"`
	Notes             string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null;index"`
	UpdatedAt         time.Time      `gorm:"not null"`
}

func (PrepRequestModel) TableName() string {
	return "prep_requests"
}
