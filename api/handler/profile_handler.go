package handler

import (
	"errors"
	"net/http"

	"planhub/api/middleware"
	"planhub/internal/dto"
	"planhub/internal/entity"
	"planhub/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	Profiles repository.ProfileRepository
	Validate *validator.Validate
}

func NewProfileHandler(profiles repository.ProfileRepository, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Validate: validate}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	profile, err := h.Profiles.FindByUserID(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	if profile == nil {
		return writeError(c, http.StatusNotFound, errors.New("profile not found"))
	}
	return c.JSON(http.StatusOK, dto.ProfileResponseFromEntity(profile))
}

// Update creates the profile on first write, then edits it in place.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.ProfileRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	profile, err := h.Profiles.FindByUserID(ctx, userID)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}

	if profile == nil {
		profile = &entity.Profile{UserID: userID}
	}
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.DateOfBirth = req.DateOfBirth
	if req.LanguagePreferred != "" {
		profile.LanguagePreferred = req.LanguagePreferred
	}

	if profile.ID == uuid.Nil {
		err = h.Profiles.Create(ctx, profile)
	} else {
		err = h.Profiles.Update(ctx, profile)
	}
	if err != nil {
		return writeError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, dto.ProfileResponseFromEntity(profile))
}
