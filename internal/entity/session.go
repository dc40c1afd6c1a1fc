package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to a user for a bounded time window.
// The token is the credential presented by the client and acts as the
// lookup key; it is stored exactly as issued and never mutated after
// creation. IPAddress and UserAgent are provenance metadata recorded at
// sign-in, not re-validated per request.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	Token string `gorm:"type:text;uniqueIndex;not null"`

	IPAddress *string `gorm:"type:varchar(45)"`
	UserAgent *string `gorm:"type:text"`

	ExpiresAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
