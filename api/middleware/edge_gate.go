package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"planhub/internal/auth"

	"github.com/labstack/echo/v4"
)

// EdgeGate is a presence check on the session cookie for a set of protected
// path prefixes. It never touches the session store, so it can run on every
// request; a request that passes the gate may still be rejected downstream
// by the resolver.
type EdgeGate struct {
	ProtectedPrefixes []string
	SignInPath        string
}

func NewEdgeGate(prefixes []string, signInPath string) EdgeGate {
	if signInPath == "" {
		signInPath = "/auth/sign-in"
	}
	return EdgeGate{
		ProtectedPrefixes: prefixes,
		SignInPath:        signInPath,
	}
}

func (g EdgeGate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if !g.matches(path) {
				return next(c)
			}
			if auth.HasSessionCookie(c.Request()) {
				return next(c)
			}

			query := url.Values{}
			query.Set("callbackUrl", path)
			return c.Redirect(http.StatusTemporaryRedirect, g.SignInPath+"?"+query.Encode())
		}
	}
}

func (g EdgeGate) matches(path string) bool {
	for _, prefix := range g.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
