package handler

import (
	"errors"
	"net/http"

	"planhub/api/middleware"
	"planhub/internal/dto"
	"planhub/internal/entity"
	"planhub/internal/repository"
	"planhub/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OrganizationHandler struct {
	Orgs     repository.OrganizationRepository
	Users    repository.UserRepository
	Activity repository.ActivityLogRepository
	Validate *validator.Validate
}

func NewOrganizationHandler(
	orgs repository.OrganizationRepository,
	users repository.UserRepository,
	activity repository.ActivityLogRepository,
	validate *validator.Validate,
) *OrganizationHandler {
	return &OrganizationHandler{
		Orgs:     orgs,
		Users:    users,
		Activity: activity,
		Validate: validate,
	}
}

// Create makes the creating user the organization's owner.
func (h *OrganizationHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.OrganizationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return writeError(c, http.StatusBadRequest, errors.New("invalid slug"))
	}

	ctx := c.Request().Context()
	existing, err := h.Orgs.FindBySlug(ctx, slug)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if existing != nil {
		return writeError(c, http.StatusConflict, errors.New("slug already taken"))
	}

	org := &entity.Organization{Name: req.Name, Slug: slug}
	if err := h.Orgs.Create(ctx, org); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	owner := &entity.Member{
		UserID:         userID,
		OrganizationID: org.ID,
		Role:           entity.MemberRoleOwner,
	}
	if err := h.Orgs.AddMember(ctx, owner); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionCreate, "organization", org.ID)
	return c.JSON(http.StatusCreated, dto.OrganizationResponseFromEntity(org))
}

func (h *OrganizationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	orgs, err := h.Orgs.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.OrganizationResponsesFromEntities(orgs))
}

func (h *OrganizationHandler) Get(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if _, err := memberOf(c, h.Orgs, orgID); err != nil {
		return err
	}
	org, err := h.Orgs.FindByID(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if org == nil {
		return writeError(c, http.StatusNotFound, errors.New("organization not found"))
	}
	return c.JSON(http.StatusOK, dto.OrganizationResponseFromEntity(org))
}

func (h *OrganizationHandler) Update(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	member, err := memberOf(c, h.Orgs, orgID)
	if err != nil {
		return err
	}
	if member.Role != entity.MemberRoleOwner {
		return writeError(c, http.StatusForbidden, errors.New("forbidden"))
	}

	var req dto.OrganizationRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	org, err := h.Orgs.FindByID(ctx, orgID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if org == nil {
		return writeError(c, http.StatusNotFound, errors.New("organization not found"))
	}

	org.Name = req.Name
	if req.Slug != "" && req.Slug != org.Slug {
		existing, err := h.Orgs.FindBySlug(ctx, req.Slug)
		if err != nil {
			return writeError(c, http.StatusInternalServerError, err)
		}
		if existing != nil {
			return writeError(c, http.StatusConflict, errors.New("slug already taken"))
		}
		org.Slug = req.Slug
	}
	if err := h.Orgs.Update(ctx, org); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionUpdate, "organization", org.ID)
	return c.JSON(http.StatusOK, dto.OrganizationResponseFromEntity(org))
}

func (h *OrganizationHandler) Delete(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	member, err := memberOf(c, h.Orgs, orgID)
	if err != nil {
		return err
	}
	if member.Role != entity.MemberRoleOwner {
		return writeError(c, http.StatusForbidden, errors.New("forbidden"))
	}
	if err := h.Orgs.Delete(c.Request().Context(), orgID); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	recordActivity(c, h.Activity, entity.ActionDelete, "organization", orgID)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrganizationHandler) ListMembers(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if _, err := memberOf(c, h.Orgs, orgID); err != nil {
		return err
	}
	members, err := h.Orgs.ListMembers(c.Request().Context(), orgID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.MemberResponsesFromEntities(members))
}

func (h *OrganizationHandler) AddMember(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	member, err := memberOf(c, h.Orgs, orgID)
	if err != nil {
		return err
	}
	if member.Role != entity.MemberRoleOwner {
		return writeError(c, http.StatusForbidden, errors.New("forbidden"))
	}

	var req dto.AddMemberRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	user, err := h.Users.FindByEmail(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if user == nil {
		return writeError(c, http.StatusNotFound, errors.New("user not found"))
	}

	existing, err := h.Orgs.FindMember(ctx, orgID, user.ID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if existing != nil {
		return writeError(c, http.StatusConflict, errors.New("already a member"))
	}

	role := entity.MemberRoleMember
	if req.Role == string(entity.MemberRoleOwner) {
		role = entity.MemberRoleOwner
	}
	newMember := &entity.Member{
		UserID:         user.ID,
		OrganizationID: orgID,
		Role:           role,
	}
	if err := h.Orgs.AddMember(ctx, newMember); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	recordActivity(c, h.Activity, entity.ActionCreate, "member", newMember.ID)
	return c.JSON(http.StatusCreated, dto.MemberResponseFromEntity(newMember))
}

func (h *OrganizationHandler) RemoveMember(c echo.Context) error {
	orgID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	member, err := memberOf(c, h.Orgs, orgID)
	if err != nil {
		return err
	}
	if member.Role != entity.MemberRoleOwner {
		return writeError(c, http.StatusForbidden, errors.New("forbidden"))
	}
	if err := h.Orgs.RemoveMember(c.Request().Context(), orgID, userID); err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	recordActivity(c, h.Activity, entity.ActionDelete, "member", userID)
	return c.NoContent(http.StatusNoContent)
}
