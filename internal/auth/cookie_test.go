package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub/internal/auth"
)

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: value})
	return req
}

func TestTokenFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		request   *http.Request
		wantToken string
		wantOK    bool
	}{
		{
			name:      "bare token",
			request:   requestWithCookie("abc123"),
			wantToken: "abc123",
			wantOK:    true,
		},
		{
			name:      "composite value keeps part before separator",
			request:   requestWithCookie("abc123.xyz"),
			wantToken: "abc123",
			wantOK:    true,
		},
		{
			name:      "multiple separators split on first",
			request:   requestWithCookie("abc.def.ghi"),
			wantToken: "abc",
			wantOK:    true,
		},
		{
			name:    "missing cookie",
			request: httptest.NewRequest(http.MethodGet, "/", nil),
			wantOK:  false,
		},
		{
			name:    "separator with empty prefix",
			request: requestWithCookie(".xyz"),
			wantOK:  false,
		},
		{
			name:    "bare separator",
			request: requestWithCookie("."),
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, ok := auth.TokenFromRequest(tt.request)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestHasSessionCookie(t *testing.T) {
	t.Parallel()

	assert.True(t, auth.HasSessionCookie(requestWithCookie("anything")))
	assert.False(t, auth.HasSessionCookie(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestSetSessionCookie(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	expiresAt := time.Now().Add(time.Hour)
	auth.SetSessionCookie(recorder, "tok-1", expiresAt, auth.CookieConfig{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.Equal(t, "tok-1", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.WithinDuration(t, expiresAt, cookie.Expires, time.Second)
}

func TestClearSessionCookie(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	auth.ClearSessionCookie(recorder, auth.CookieConfig{Secure: true})

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
