package entity

import (
	"time"

	"github.com/google/uuid"
)

type Sprint struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	Name string  `gorm:"type:varchar(255);not null"`
	Goal *string `gorm:"type:text"`

	StartDate time.Time
	EndDate   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks []Task
}
