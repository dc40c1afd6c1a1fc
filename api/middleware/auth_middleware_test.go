package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub/api/middleware"
	"planhub/internal/auth"
)

type stubResolver struct {
	principal auth.Principal
	err       error
}

func (s stubResolver) Resolve(context.Context, *http.Request) (auth.Principal, error) {
	return s.principal, s.err
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	newContext := func() (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		rec := httptest.NewRecorder()
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), rec), rec
	}

	t.Run("sets identity on the request context", func(t *testing.T) {
		t.Parallel()

		principal := auth.Principal{UserID: uuid.New(), SessionID: uuid.New()}
		m := middleware.AuthMiddleware{Resolver: stubResolver{principal: principal}}

		c, _ := newContext()
		var gotUser, gotSession uuid.UUID
		handler := m.RequireAuth(func(c echo.Context) error {
			gotUser, _ = middleware.UserIDFromContext(c)
			gotSession, _ = middleware.SessionIDFromContext(c)
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, handler(c))
		assert.Equal(t, principal.UserID, gotUser)
		assert.Equal(t, principal.SessionID, gotSession)
	})

	t.Run("unauthenticated maps to 401", func(t *testing.T) {
		t.Parallel()

		m := middleware.AuthMiddleware{Resolver: stubResolver{err: auth.ErrUnauthenticated}}

		c, _ := newContext()
		called := false
		handler := m.RequireAuth(func(c echo.Context) error {
			called = true
			return nil
		})

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
		assert.False(t, called)
	})

	t.Run("store failure maps to 503 not 401", func(t *testing.T) {
		t.Parallel()

		wrapped := errors.Join(auth.ErrStoreUnavailable, errors.New("connection refused"))
		m := middleware.AuthMiddleware{Resolver: stubResolver{err: wrapped}}

		c, _ := newContext()
		handler := m.RequireAuth(func(c echo.Context) error { return nil })

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
	})

	t.Run("missing resolver rejects", func(t *testing.T) {
		t.Parallel()

		m := middleware.AuthMiddleware{}

		c, _ := newContext()
		handler := m.RequireAuth(func(c echo.Context) error { return nil })

		err := handler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
