package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ActivityAction string

const (
	ActionCreate         ActivityAction = "create"
	ActionUpdate         ActivityAction = "update"
	ActionDelete         ActivityAction = "delete"
	ActionSignIn         ActivityAction = "sign_in"
	ActionSignInFailed   ActivityAction = "sign_in_failed"
	ActionSignOut        ActivityAction = "sign_out"
	ActionPasswordReset  ActivityAction = "password_reset"
	ActionSessionRevoked ActivityAction = "session_revoked"
)

type ActivityLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	Action   ActivityAction `gorm:"type:varchar(30);not null"`
	Entity   string         `gorm:"type:varchar(50)"`
	EntityID *uuid.UUID     `gorm:"type:uuid"`

	IPAddress *string `gorm:"type:varchar(45)"`
	Metadata  datatypes.JSON

	CreatedAt time.Time
}
