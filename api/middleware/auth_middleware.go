package middleware

import (
	"errors"
	"net/http"

	"planhub/internal/auth"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthMiddleware struct {
	Resolver auth.Resolver
	Log      logrus.FieldLogger
}

// RequireAuth runs the authoritative session check. Rejection is
// all-or-nothing: no partial identity ever reaches the handler.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Resolver == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		principal, err := m.Resolver.Resolve(c.Request().Context(), c.Request())
		if err != nil {
			if errors.Is(err, auth.ErrStoreUnavailable) {
				if m.Log != nil {
					m.Log.WithError(err).Error("session store lookup failed")
				}
				return echo.NewHTTPError(http.StatusServiceUnavailable, "service unavailable")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}

		SetAuthContext(c, principal.UserID, principal.SessionID)
		return next(c)
	}
}
