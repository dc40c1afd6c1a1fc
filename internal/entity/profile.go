package entity

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	FirstName         string `gorm:"type:varchar(100);not null"`
	LastName          string `gorm:"type:varchar(100);not null"`
	DateOfBirth       *time.Time
	LanguagePreferred string `gorm:"type:varchar(10);default:'en'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
