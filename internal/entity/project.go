package entity

import (
	"time"

	"github.com/google/uuid"
)

// Status is shared by projects and tasks.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
	StatusCancelled  Status = "cancelled"
)

type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Organization   Organization `gorm:"constraint:OnDelete:CASCADE"`

	Name        string  `gorm:"type:varchar(255);not null;index"`
	Description *string `gorm:"type:text"`
	Image       *string `gorm:"type:text"`
	Status      Status  `gorm:"type:varchar(20);default:'todo';not null"`

	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Sprints []Sprint
	Tasks   []Task
}
