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

type ProjectHandler struct {
	Projects repository.ProjectRepository
	Orgs     repository.OrganizationRepository
	Activity repository.ActivityLogRepository
	Validate *validator.Validate
}

func NewProjectHandler(
	projects repository.ProjectRepository,
	orgs repository.OrganizationRepository,
	activity repository.ActivityLogRepository,
	validate *validator.Validate,
) *ProjectHandler {
	return &ProjectHandler{
		Projects: projects,
		Orgs:     orgs,
		Activity: activity,
		Validate: validate,
	}
}

func (h *ProjectHandler) Create(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if _, err := memberOf(c, h.Orgs, orgID); err != nil {
		return err
	}

	var req dto.ProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	project := &entity.Project{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Image:          req.Image,
		Status:         entity.StatusTodo,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if req.Status != "" {
		project.Status = entity.Status(req.Status)
	}
	if err := h.Projects.Create(c.Request().Context(), project); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionCreate, "project", project.ID)
	return c.JSON(http.StatusCreated, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) ListByOrganization(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if _, err := memberOf(c, h.Orgs, orgID); err != nil {
		return err
	}
	projects, err := h.Projects.ListByOrganization(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.ProjectResponsesFromEntities(projects))
}

func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) Update(c echo.Context) error {
	project, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}

	var req dto.ProjectRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Image = req.Image
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	if req.Status != "" {
		project.Status = entity.Status(req.Status)
	}
	if err := h.Projects.Update(c.Request().Context(), project); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionUpdate, "project", project.ID)
	return c.JSON(http.StatusOK, dto.ProjectResponseFromEntity(project))
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	project, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	if err := h.Projects.Delete(c.Request().Context(), project.ID); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	recordActivity(c, h.Activity, entity.ActionDelete, "project", project.ID)
	return c.NoContent(http.StatusNoContent)
}

// loadAuthorized fetches the project from the :id param and verifies the
// caller belongs to its organization.
func (h *ProjectHandler) loadAuthorized(c echo.Context) (*entity.Project, error) {
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
