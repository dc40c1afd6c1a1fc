package handler

import (
	"errors"
	"net/http"

	"planhub/internal/dto"
	"planhub/internal/entity"
	"planhub/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SprintHandler struct {
	Sprints  repository.SprintRepository
	Projects repository.ProjectRepository
	Orgs     repository.OrganizationRepository
	Validate *validator.Validate
}

func NewSprintHandler(
	sprints repository.SprintRepository,
	projects repository.ProjectRepository,
	orgs repository.OrganizationRepository,
	validate *validator.Validate,
) *SprintHandler {
	return &SprintHandler{
		Sprints:  sprints,
		Projects: projects,
		Orgs:     orgs,
		Validate: validate,
	}
}

func (h *SprintHandler) Create(c echo.Context) error {
	project, err := h.authorizedProject(c, "id")
	if err != nil {
		return err
	}

	var req dto.SprintRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	sprint := &entity.Sprint{
		ProjectID: project.ID,
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.Sprints.Create(c.Request().Context(), sprint); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, dto.SprintResponseFromEntity(sprint))
}

func (h *SprintHandler) ListByProject(c echo.Context) error {
	project, err := h.authorizedProject(c, "id")
	if err != nil {
		return err
	}
	sprints, err := h.Sprints.ListByProject(c.Request().Context(), project.ID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.SprintResponsesFromEntities(sprints))
}

func (h *SprintHandler) Get(c echo.Context) error {
	sprint, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.SprintResponseFromEntity(sprint))
}

func (h *SprintHandler) Update(c echo.Context) error {
	sprint, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	var req dto.SprintRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	sprint.Name = req.Name
	sprint.Goal = req.Goal
	sprint.StartDate = req.StartDate
	sprint.EndDate = req.EndDate
	if err := h.Sprints.Update(c.Request().Context(), sprint); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.SprintResponseFromEntity(sprint))
}

func (h *SprintHandler) Delete(c echo.Context) error {
	sprint, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	if err := h.Sprints.Delete(c.Request().Context(), sprint.ID); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SprintHandler) authorizedProject(c echo.Context, param string) (*entity.Project, error) {
	projectID, err := parseUUIDParam(c, param)
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

func (h *SprintHandler) loadAuthorized(c echo.Context) (*entity.Sprint, error) {
	sprintID, err := parseUUIDParam(c, "id")
	if err != nil {
		return nil, writeError(c, http.StatusBadRequest, err)
	}
	sprint, err := h.Sprints.FindByID(c.Request().Context(), sprintID)
	if err != nil {
		return nil, writeError(c, http.StatusInternalServerError, err)
	}
	if sprint == nil {
		return nil, writeError(c, http.StatusNotFound, errors.New("sprint not found"))
	}
	project, err := h.Projects.FindByID(c.Request().Context(), sprint.ProjectID)
	if err != nil {
		return nil, writeError(c, http.StatusInternalServerError, err)
	}
	if project == nil {
		return nil, writeError(c, http.StatusNotFound, errors.New("project not found"))
	}
	if _, err := memberOf(c, h.Orgs, project.OrganizationID); err != nil {
		return nil, err
	}
	return sprint, nil
}
