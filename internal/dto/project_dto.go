package dto

import (
	"time"

	"planhub/internal/entity"
)

type ProjectRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description *string    `json:"description" validate:"omitempty"`
	Image       *string    `json:"image" validate:"omitempty"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress review done blocked cancelled"`
	StartDate   *time.Time `json:"start_date" validate:"omitempty"`
	EndDate     *time.Time `json:"end_date" validate:"omitempty"`
}

type ProjectResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Description    *string    `json:"description,omitempty"`
	Image          *string    `json:"image,omitempty"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ProjectResponseFromEntity(project *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:             project.ID.String(),
		OrganizationID: project.OrganizationID.String(),
		Name:           project.Name,
		Description:    project.Description,
		Image:          project.Image,
		Status:         string(project.Status),
		StartDate:      project.StartDate,
		EndDate:        project.EndDate,
		CreatedAt:      project.CreatedAt,
		UpdatedAt:      project.UpdatedAt,
	}
}

func ProjectResponsesFromEntities(projects []entity.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ProjectResponseFromEntity(&projects[i]))
	}
	return responses
}
