package dto

import (
	"time"

	"planhub/internal/entity"
)

type SprintRequest struct {
	Name      string    `json:"name" validate:"required,max=255"`
	Goal      *string   `json:"goal" validate:"omitempty"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type SprintResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Goal      *string   `json:"goal,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func SprintResponseFromEntity(sprint *entity.Sprint) SprintResponse {
	return SprintResponse{
		ID:        sprint.ID.String(),
		ProjectID: sprint.ProjectID.String(),
		Name:      sprint.Name,
		Goal:      sprint.Goal,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		CreatedAt: sprint.CreatedAt,
		UpdatedAt: sprint.UpdatedAt,
	}
}

func SprintResponsesFromEntities(sprints []entity.Sprint) []SprintResponse {
	responses := make([]SprintResponse, 0, len(sprints))
	for i := range sprints {
		responses = append(responses, SprintResponseFromEntity(&sprints[i]))
	}
	return responses
}
