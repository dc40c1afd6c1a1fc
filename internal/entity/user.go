package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser   UserRole = "user"
	UserRoleMember UserRole = "member"
	UserRoleDev    UserRole = "dev"
	UserRoleAdmin  UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         *string   `gorm:"type:varchar(255)"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash *string   `gorm:"type:text"`
	Role         UserRole  `gorm:"type:varchar(20);default:'user';not null"`

	EmailVerified bool    `gorm:"default:false"`
	Image         *string `gorm:"type:text"`
	Lang          string  `gorm:"type:varchar(10);default:'en'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Sessions []Session
	Profile  *Profile
}
