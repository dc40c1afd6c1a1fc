package handler

import (
	"errors"
	"net/http"

	"planhub/api/middleware"
	"planhub/internal/auth"
	"planhub/internal/dto"
	"planhub/internal/repository"
	"planhub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AuthService
	Profiles repository.ProfileRepository
	Validate *validator.Validate
	Cookie   auth.CookieConfig
}

func NewAuthHandler(svc *service.AuthService, profiles repository.ProfileRepository, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Profiles: profiles,
		Validate: validate,
		Cookie: auth.CookieConfig{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Lang:     req.Lang,
	}
	user, err := h.Service.SignUp(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.UserResponseFromEntity(user))
}

// SignIn verifies credentials and hands the opaque session token to the
// client in the session cookie. The token never appears in the JSON body.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.SignInInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
		UserAgent: stringPtr(c.Request().UserAgent()),
	}
	result, err := h.Service.SignIn(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	auth.SetSessionCookie(c.Response(), result.Token, result.ExpiresAt, h.Cookie)
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(result.User))
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	sessionID, ok := middleware.SessionIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.SignOut(c.Request().Context(), sessionID, &userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	auth.ClearSessionCookie(c.Response(), h.Cookie)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) SignOutAll(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	if err := h.Service.SignOutAll(c.Request().Context(), userID, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	auth.ClearSessionCookie(c.Response(), h.Cookie)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	var req dto.VerifyEmailRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.VerifyEmail(c.Request().Context(), req.Token); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := validateStruct(h.Validate, req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the account plus its profile, mirroring what the dashboard
// needs in one round trip.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	user, err := h.Service.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return writeServiceError(c, err)
	}
	if user == nil {
		return writeError(c, http.StatusNotFound, errors.New("user not found"))
	}

	response := map[string]any{
		"user": dto.UserResponseFromEntity(user),
	}
	if h.Profiles != nil {
		profile, err := h.Profiles.FindByUserID(c.Request().Context(), userID)
		if err != nil {
			return writeError(c, http.StatusInternalServerError, err)
		}
		if profile != nil {
			p := dto.ProfileResponseFromEntity(profile)
			response["profile"] = p
		} else {
			response["profile"] = nil
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) AdminListUsers(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	users, err := h.Service.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}

func (h *AuthHandler) AdminRevokeUserSessions(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.RevokeUserSessions(c.Request().Context(), userID); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
