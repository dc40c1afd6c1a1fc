package auth

import (
	"net/http"
	"strings"
	"time"
)

const (
	// CookieName carries the session credential.
	CookieName = "session_token"

	// tokenSeparator splits a composite cookie value of the form
	// <token>.<suffix>. Only the part before the first separator is the
	// lookup key; the suffix is opaque to this package.
	tokenSeparator = "."
)

// TokenFromRequest extracts the raw session token from the request cookie.
// It reports false when the cookie is absent, empty, or degenerates to an
// empty token after stripping the suffix. It never touches the store.
func TokenFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	token := cookie.Value
	if i := strings.Index(token, tokenSeparator); i >= 0 {
		token = token[:i]
	}
	if token == "" {
		return "", false
	}
	return token, true
}

// HasSessionCookie reports whether the request carries a syntactically
// plausible session cookie. Presence only; validity is the resolver's job.
func HasSessionCookie(r *http.Request) bool {
	_, ok := TokenFromRequest(r)
	return ok
}

// CookieConfig defines how session cookies are issued.
type CookieConfig struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// SetSessionCookie issues the session cookie to the client.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: cfg.SameSite,
	})
}
