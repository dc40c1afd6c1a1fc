package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planhub/internal/auth"
	"planhub/internal/entity"
	"planhub/internal/service"
	"planhub/internal/utils"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) VerifyEmail(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.EmailVerified = true
	}
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *memSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	r.sessions[session.Token] = &copied
	return nil
}

func (r *memSessionRepo) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) DeleteByID(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, session := range r.sessions {
		if session.ID == sessionID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *memSessionRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *memSessionRepo) CleanupExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for token, session := range r.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

type memVerificationRepo struct {
	mu     sync.Mutex
	tokens []*entity.VerificationToken
}

func (r *memVerificationRepo) Create(_ context.Context, token *entity.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	copied := *token
	r.tokens = append(r.tokens, &copied)
	return nil
}

func (r *memVerificationRepo) FindValid(
	_ context.Context,
	tokenHash string,
	tokenType entity.VerificationType,
) (*entity.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash && token.Type == tokenType &&
			token.UsedAt == nil && token.ExpiresAt.After(time.Now()) {
			copied := *token
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memVerificationRepo) MarkUsed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
		}
	}
	return nil
}

type memActivityRepo struct {
	mu      sync.Mutex
	entries []entity.ActivityLog
}

func (r *memActivityRepo) Log(_ context.Context, log *entity.ActivityLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *memActivityRepo) actions() []entity.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]entity.ActivityAction, 0, len(r.entries))
	for _, entry := range r.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type authFixture struct {
	service  *service.AuthService
	users    *memUserRepo
	sessions *memSessionRepo
	tokens   *memVerificationRepo
	activity *memActivityRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    newMemUserRepo(),
		sessions: newMemSessionRepo(),
		tokens:   &memVerificationRepo{},
		activity: &memActivityRepo{},
	}
	f.service = service.NewAuthService(
		f.users,
		f.sessions,
		f.tokens,
		f.activity,
		nil,
		service.BcryptPasswordHasher{Cost: 4},
		service.RealClock{},
		service.AuthConfig{},
	)
	return f
}

func (f *authFixture) signUp(t *testing.T, email, password string) *entity.User {
	t.Helper()
	user, err := f.service.SignUp(context.Background(), service.SignUpInput{
		Name:     "Ada",
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_SignUp(t *testing.T) {
	t.Parallel()

	t.Run("creates user with normalized email", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		user := f.signUp(t, "  Ada@Example.COM ", "s3cret-pass")

		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, entity.UserRoleUser, user.Role)
		require.NotNil(t, user.PasswordHash)
		assert.NotEqual(t, "s3cret-pass", *user.PasswordHash)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.signUp(t, "ada@example.com", "s3cret-pass")

		_, err := f.service.SignUp(context.Background(), service.SignUpInput{
			Email:    "ADA@example.com",
			Password: "another-pass",
		})
		assert.ErrorIs(t, err, service.ErrEmailAlreadyRegistered)
	})

	t.Run("blank input is rejected", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		_, err := f.service.SignUp(context.Background(), service.SignUpInput{Email: " ", Password: "x"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	t.Parallel()

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		user := f.signUp(t, "ada@example.com", "s3cret-pass")

		result, err := f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "ada@example.com",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, user.ID, result.User.ID)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), result.ExpiresAt, time.Minute)

		stored, err := f.sessions.FindByToken(context.Background(), result.Token)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, user.ID, stored.UserID)

		assert.Contains(t, f.activity.actions(), entity.ActionSignIn)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.signUp(t, "ada@example.com", "s3cret-pass")

		_, err := f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "ada@example.com",
			Password: "wrong-pass",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Contains(t, f.activity.actions(), entity.ActionSignInFailed)
	})

	t.Run("unknown email is rejected with the same error", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		_, err := f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("each sign-in issues a distinct token", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		f.signUp(t, "ada@example.com", "s3cret-pass")

		input := service.SignInInput{Email: "ada@example.com", Password: "s3cret-pass"}
		first, err := f.service.SignIn(context.Background(), input)
		require.NoError(t, err)
		second, err := f.service.SignIn(context.Background(), input)
		require.NoError(t, err)

		assert.NotEqual(t, first.Token, second.Token)
		assert.Equal(t, 2, f.sessions.count())
	})
}

// The issued token, carried in a cookie, must resolve back to the user that
// signed in, and stop resolving once the session is revoked.
func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	user := f.signUp(t, "ada@example.com", "s3cret-pass")

	result, err := f.service.SignIn(context.Background(), service.SignInInput{
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resolver := auth.NewStoreResolver(f.sessions, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: result.Token})

	principal, err := resolver.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)

	require.NoError(t, f.service.SignOut(context.Background(), principal.SessionID, &user.ID, nil))

	_, err = resolver.Resolve(context.Background(), req)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthService_SignOutAll(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	user := f.signUp(t, "ada@example.com", "s3cret-pass")

	input := service.SignInInput{Email: "ada@example.com", Password: "s3cret-pass"}
	for i := 0; i < 3; i++ {
		_, err := f.service.SignIn(context.Background(), input)
		require.NoError(t, err)
	}
	require.Equal(t, 3, f.sessions.count())

	require.NoError(t, f.service.SignOutAll(context.Background(), user.ID, nil))
	assert.Zero(t, f.sessions.count())
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	user := f.signUp(t, "ada@example.com", "s3cret-pass")

	raw := "verify-token"
	require.NoError(t, f.tokens.Create(context.Background(), &entity.VerificationToken{
		UserID:     user.ID,
		Identifier: user.Email,
		TokenHash:  utils.HashToken(raw),
		Type:       entity.EmailVerify,
		ExpiresAt:  time.Now().Add(time.Hour),
	}))

	require.NoError(t, f.service.VerifyEmail(context.Background(), raw))

	updated, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, updated.EmailVerified)

	// A used token must not verify twice.
	assert.ErrorIs(t, f.service.VerifyEmail(context.Background(), raw), service.ErrInvalidToken)
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Parallel()

	t.Run("changes the password and revokes all sessions", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		user := f.signUp(t, "ada@example.com", "old-pass")

		_, err := f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "ada@example.com",
			Password: "old-pass",
		})
		require.NoError(t, err)
		require.Equal(t, 1, f.sessions.count())

		raw := "reset-token"
		require.NoError(t, f.tokens.Create(context.Background(), &entity.VerificationToken{
			UserID:     user.ID,
			Identifier: user.Email,
			TokenHash:  utils.HashToken(raw),
			Type:       entity.PasswordReset,
			ExpiresAt:  time.Now().Add(time.Hour),
		}))

		require.NoError(t, f.service.ResetPassword(context.Background(), raw, "new-pass"))
		assert.Zero(t, f.sessions.count())

		_, err = f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "ada@example.com",
			Password: "old-pass",
		})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)

		_, err = f.service.SignIn(context.Background(), service.SignInInput{
			Email:    "ada@example.com",
			Password: "new-pass",
		})
		assert.NoError(t, err)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		err := f.service.ResetPassword(context.Background(), "no-such-token", "new-pass")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		t.Parallel()

		f := newAuthFixture(t)
		user := f.signUp(t, "ada@example.com", "old-pass")

		raw := "stale-token"
		require.NoError(t, f.tokens.Create(context.Background(), &entity.VerificationToken{
			UserID:     user.ID,
			Identifier: user.Email,
			TokenHash:  utils.HashToken(raw),
			Type:       entity.PasswordReset,
			ExpiresAt:  time.Now().Add(-time.Minute),
		}))

		err := f.service.ResetPassword(context.Background(), raw, "new-pass")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

// ForgotPassword must answer identically for registered and unknown emails.
func TestAuthService_ForgotPassword(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	f.signUp(t, "ada@example.com", "s3cret-pass")

	assert.NoError(t, f.service.ForgotPassword(context.Background(), "ada@example.com"))
	assert.NoError(t, f.service.ForgotPassword(context.Background(), "nobody@example.com"))
}
