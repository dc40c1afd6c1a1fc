package entity

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
	Slug string    `gorm:"type:varchar(255);uniqueIndex;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Members  []Member
	Projects []Project
}
