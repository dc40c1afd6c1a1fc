package handler

import (
	"errors"
	"net/http"

	"planhub/internal/dto"
	"planhub/internal/entity"
	"planhub/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TaskHandler struct {
	Tasks    repository.TaskRepository
	Projects repository.ProjectRepository
	Orgs     repository.OrganizationRepository
	Activity repository.ActivityLogRepository
	Validate *validator.Validate
}

func NewTaskHandler(
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	orgs repository.OrganizationRepository,
	activity repository.ActivityLogRepository,
	validate *validator.Validate,
) *TaskHandler {
	return &TaskHandler{
		Tasks:    tasks,
		Projects: projects,
		Orgs:     orgs,
		Activity: activity,
		Validate: validate,
	}
}

func (h *TaskHandler) Create(c echo.Context) error {
	project, err := h.authorizedProject(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	task := &entity.Task{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.StatusTodo,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if req.Status != "" {
		task.Status = entity.Status(req.Status)
	}
	if err := applyTaskRefs(task, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Tasks.Create(c.Request().Context(), task); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionCreate, "task", task.ID)
	return c.JSON(http.StatusCreated, dto.TaskResponseFromEntity(task))
}

// ListByProject returns the project's tasks; pass ?sprint_id= to narrow to
// one sprint.
func (h *TaskHandler) ListByProject(c echo.Context) error {
	project, err := h.authorizedProject(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if raw := c.QueryParam("sprint_id"); raw != "" {
		sprintID, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, http.StatusBadRequest, errors.New("invalid sprint_id"))
		}
		tasks, err := h.Tasks.ListBySprint(ctx, sprintID)
		if err != nil {
			return writeError(c, http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, dto.TaskResponsesFromEntities(tasks))
	}

	tasks, err := h.Tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponsesFromEntities(tasks))
}

func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) Update(c echo.Context) error {
	task, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Priority = req.Priority
	task.DueDate = req.DueDate
	if req.Status != "" {
		task.Status = entity.Status(req.Status)
	}
	task.SprintID = nil
	task.AssigneeID = nil
	if err := applyTaskRefs(task, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Tasks.Update(c.Request().Context(), task); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionUpdate, "task", task.ID)
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) Delete(c echo.Context) error {
	task, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	if err := h.Tasks.Delete(c.Request().Context(), task.ID); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	recordActivity(c, h.Activity, entity.ActionDelete, "task", task.ID)
	return c.NoContent(http.StatusNoContent)
}

func applyTaskRefs(task *entity.Task, req dto.TaskRequest) error {
	if req.SprintID != nil {
		sprintID, err := uuid.Parse(*req.SprintID)
		if err != nil {
			return errors.New("invalid sprint_id")
		}
		task.SprintID = &sprintID
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			return errors.New("invalid assignee_id")
		}
		task.AssigneeID = &assigneeID
	}
	return nil
}

func (h *TaskHandler) authorizedProject(c echo.Context) (*entity.Project, error) {
	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, writeError(c, http.StatusBadRequest, err)
	}
	project, err := h.Projects.FindByID(c.Request().Context(), projectID)
	if err != nil {
		return nil, writeError(c, http.StatusInternalServerError, err)
	}
	if project == nil {
		return nil, writeError(c, http.StatusNotFound, errors.New("project not found"))
	}
	if _, err := memberOf(c, h.Orgs, project.OrganizationID); err != nil {
		return nil, err
	}
	return project, nil
}

func (h *TaskHandler) loadAuthorized(c echo.Context) (*entity.Task, error) {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, writeError(c, http.StatusBadRequest, err)
	}
	task, err := h.Tasks.FindByID(c.Request().Context(), taskID)
	if err != nil {
		return nil, writeError(c, http.StatusInternalServerError, err)
	}
	if task == nil {
		return nil, writeError(c, http.StatusNotFound, errors.New("task not found"))
	}
	project, err := h.Projects.FindByID(c.Request().Context(), task.ProjectID)
	if err != nil {
		return nil, writeError(c, http.StatusInternalServerError, err)
	}
	if project == nil {
		return nil, writeError(c, http.StatusNotFound, errors.New("project not found"))
	}
	if _, err := memberOf(c, h.Orgs, project.OrganizationID); err != nil {
		return nil, err
	}
	return task, nil
}
