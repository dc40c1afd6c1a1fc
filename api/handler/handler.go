package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"planhub/api/middleware"
	"planhub/internal/entity"
	"planhub/internal/repository"
	"planhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		status = http.StatusConflict
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	}
	return writeError(c, status, err)
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

// memberOf authorizes the current user against an organization. Membership
// is checked per request; the resolved principal alone never implies any
// organization access.
func memberOf(c echo.Context, orgs repository.OrganizationRepository, orgID uuid.UUID) (*entity.Member, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	member, err := orgs.FindMember(c.Request().Context(), orgID, userID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if member == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return member, nil
}

func recordActivity(c echo.Context, activity repository.ActivityLogRepository, action entity.ActivityAction, entityName string, entityID uuid.UUID) {
	if activity == nil {
		return
	}
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return
	}
	log := &entity.ActivityLog{
		UserID:    &userID,
		Action:    action,
		Entity:    entityName,
		EntityID:  &entityID,
		IPAddress: stringPtr(c.RealIP()),
	}
	_ = activity.Log(c.Request().Context(), log)
}

func validateStruct(validate *validator.Validate, payload any) error {
	if validate == nil {
		return nil
	}
	return validate.Struct(payload)
}
