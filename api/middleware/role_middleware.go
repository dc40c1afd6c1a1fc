package middleware

import (
	"net/http"

	"planhub/internal/entity"
	"planhub/internal/repository"

	"github.com/labstack/echo/v4"
)

// RequireRole loads the user behind the resolved principal and checks its
// role. The extra read is deliberate: the resolver only hands out a user id
// and role is profile data looked up separately.
func RequireRole(users repository.UserRepository, role entity.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserIDFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
			}
			if user == nil || user.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
