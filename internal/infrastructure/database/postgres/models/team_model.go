package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TeamModel represents the database model for Team. Member lists are jsonb
// arrays of user IDs; role consistency is enforced by the team usecase.
type TeamModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Supervisors datatypes.JSON `gorm:"type:jsonb"`
	Riders      datatypes.JSON `gorm:"type:jsonb"`
	Cooks       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

func (TeamModel) TableName() string {
	return "teams"
}
