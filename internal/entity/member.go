package entity

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// Member ties a user to an organization. A user joins an organization at
// most once.
type Member struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_user_org"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_user_org"`

	User         User         `gorm:"constraint:OnDelete:CASCADE"`
	Organization Organization `gorm:"constraint:OnDelete:CASCADE"`

	Role MemberRole `gorm:"type:varchar(20);default:'member';not null"`

	JoinedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time
}
