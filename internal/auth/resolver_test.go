package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"planhub/internal/auth"
	"planhub/internal/entity"
)

type mockSessionLookup struct {
	mock.Mock
}

func (m *mockSessionLookup) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestStoreResolver_Resolve(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	sessionID := uuid.New()

	validSession := func() *entity.Session {
		return &entity.Session{
			ID:        sessionID,
			UserID:    userID,
			Token:     "tok-1",
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("no cookie rejects without touching the store", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		_, err := resolver.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		store.AssertNotCalled(t, "FindByToken")
	})

	t.Run("unknown token rejects", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-999").Return(nil, nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		_, err := resolver.Resolve(context.Background(), requestWithCookie("tok-999"))
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		store.AssertExpectations(t)
	})

	t.Run("expired session rejects identically to unknown token", func(t *testing.T) {
		t.Parallel()

		expired := validSession()
		expired.ExpiresAt = now.Add(-time.Second)

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-1").Return(expired, nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		_, err := resolver.Resolve(context.Background(), requestWithCookie("tok-1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		// Externally indistinguishable from an unknown token.
		assert.Equal(t, auth.ErrUnauthenticated.Error(), err.Error())
	})

	t.Run("session valid exactly at expiry instant", func(t *testing.T) {
		t.Parallel()

		boundary := validSession()
		boundary.ExpiresAt = now

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-1").Return(boundary, nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		principal, err := resolver.Resolve(context.Background(), requestWithCookie("tok-1"))
		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
	})

	t.Run("valid session resolves to its user", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-1").Return(validSession(), nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		principal, err := resolver.Resolve(context.Background(), requestWithCookie("tok-1"))
		require.NoError(t, err)
		assert.Equal(t, userID, principal.UserID)
		assert.Equal(t, sessionID, principal.SessionID)
	})

	t.Run("repeated resolution is idempotent with one read per call", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-1").Return(validSession(), nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		for i := 0; i < 3; i++ {
			principal, err := resolver.Resolve(context.Background(), requestWithCookie("tok-1"))
			require.NoError(t, err)
			assert.Equal(t, userID, principal.UserID)
		}
		store.AssertNumberOfCalls(t, "FindByToken", 3)
	})

	t.Run("composite cookie looks up the stripped token", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "abc123").Return(nil, nil)
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		_, err := resolver.Resolve(context.Background(), requestWithCookie("abc123.xyz"))
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
		store.AssertCalled(t, "FindByToken", mock.Anything, "abc123")
	})

	t.Run("store failure surfaces as store unavailable", func(t *testing.T) {
		t.Parallel()

		store := &mockSessionLookup{}
		store.On("FindByToken", mock.Anything, "tok-1").Return(nil, errors.New("connection refused"))
		resolver := auth.NewStoreResolver(store, fixedClock{now}, nil)

		_, err := resolver.Resolve(context.Background(), requestWithCookie("tok-1"))
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, auth.ErrUnauthenticated)
	})
}
