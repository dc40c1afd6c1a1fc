package entity

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE"`

	SprintID *uuid.UUID `gorm:"type:uuid;index"`
	Sprint   *Sprint    `gorm:"constraint:OnDelete:SET NULL"`

	AssigneeID *uuid.UUID `gorm:"type:uuid;index"`
	Assignee   *User      `gorm:"constraint:OnDelete:SET NULL"`

	Title       string  `gorm:"type:varchar(255);not null"`
	Description *string `gorm:"type:text"`
	Status      Status  `gorm:"type:varchar(20);default:'todo';not null"`
	Priority    int     `gorm:"default:0"`

	DueDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
