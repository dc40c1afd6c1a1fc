package dto

import (
	"time"

	"planhub/internal/entity"
)

type TaskRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description" validate:"omitempty"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress review done blocked cancelled"`
	Priority    int        `json:"priority" validate:"omitempty,min=0,max=10"`
	SprintID    *string    `json:"sprint_id" validate:"omitempty,uuid"`
	AssigneeID  *string    `json:"assignee_id" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date" validate:"omitempty"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	SprintID    *string    `json:"sprint_id,omitempty"`
	AssigneeID  *string    `json:"assignee_id,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func TaskResponseFromEntity(task *entity.Task) TaskResponse {
	response := TaskResponse{
		ID:          task.ID.String(),
		ProjectID:   task.ProjectID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.SprintID != nil {
		id := task.SprintID.String()
		response.SprintID = &id
	}
	if task.AssigneeID != nil {
		id := task.AssigneeID.String()
		response.AssigneeID = &id
	}
	return response
}

func TaskResponsesFromEntities(tasks []entity.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, TaskResponseFromEntity(&tasks[i]))
	}
	return responses
}
