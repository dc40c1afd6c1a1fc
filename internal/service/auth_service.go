package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"planhub/internal/entity"
	"planhub/internal/repository"
	"planhub/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// dummyPasswordHash keeps the sign-in timing profile identical whether or
// not the email is registered.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const sessionTokenBytes = 32

type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Lang     string
}

type SignInInput struct {
	Email     string
	Password  string
	IPAddress *string
	UserAgent *string
}

// SignInResult carries the raw session token for the handler to place into
// the session cookie. The token is returned exactly as persisted so the
// next resolver lookup matches it verbatim.
type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

type AuthService struct {
	users         repository.UserRepository
	sessions      repository.SessionRepository
	verifications repository.VerificationTokenRepository
	activity      repository.ActivityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	clock        Clock
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	verifications repository.VerificationTokenRepository,
	activity repository.ActivityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:         users,
		sessions:      sessions,
		verifications: verifications,
		activity:      activity,
		emailSender:   emailSender,
		passwordHash:  passwordHash,
		clock:         clock,
		config:        config,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*entity.User, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: &hash,
		Role:         entity.UserRoleUser,
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = &name
	}
	if lang := strings.TrimSpace(input.Lang); lang != "" {
		user.Lang = lang
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendEmailVerification(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn verifies credentials and creates a session record. Session
// creation is the only write path for sessions; the resolver never inserts
// or mutates them.
func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidInput
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logActivity(ctx, nil, input.IPAddress, entity.ActionSignInFailed, "user", nil, map[string]any{"email": email})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(*user.PasswordHash, input.Password) {
		_ = s.logActivity(ctx, &user.ID, input.IPAddress, entity.ActionSignInFailed, "user", &user.ID, nil)
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateRandomToken(sessionTokenBytes)
	if err != nil {
		return nil, err
	}

	expiresAt := s.now().Add(s.sessionTTL())
	session := &entity.Session{
		UserID:    user.ID,
		Token:     token,
		IPAddress: input.IPAddress,
		UserAgent: input.UserAgent,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	_ = s.logActivity(ctx, &user.ID, input.IPAddress, entity.ActionSignIn, "session", &session.ID, nil)

	return &SignInResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

func (s *AuthService) SignOut(ctx context.Context, sessionID uuid.UUID, userID *uuid.UUID, ipAddress *string) error {
	if err := s.sessions.DeleteByID(ctx, sessionID); err != nil {
		return err
	}
	_ = s.logActivity(ctx, userID, ipAddress, entity.ActionSignOut, "session", &sessionID, nil)
	return nil
}

func (s *AuthService) SignOutAll(ctx context.Context, userID uuid.UUID, ipAddress *string) error {
	if err := s.sessions.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	_ = s.logActivity(ctx, &userID, ipAddress, entity.ActionSessionRevoked, "session", nil, map[string]any{"scope": "all"})
	return nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidInput
	}

	verification, err := s.verifications.FindValid(ctx, utils.HashToken(token), entity.EmailVerify)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}

	if err := s.users.VerifyEmail(ctx, verification.UserID); err != nil {
		return err
	}
	return s.verifications.MarkUsed(ctx, verification.ID)
}

// ForgotPassword always reports success so responses cannot be used to
// probe which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.createVerificationToken(ctx, user, entity.PasswordReset, s.resetTokenTTL())
	if err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
			return err
		}
	}

	_ = s.logActivity(ctx, &user.ID, nil, entity.ActionPasswordReset, "user", &user.ID, map[string]any{"stage": "requested"})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}

	verification, err := s.verifications.FindValid(ctx, utils.HashToken(token), entity.PasswordReset)
	if err != nil {
		return err
	}
	if verification == nil {
		return ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, verification.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = &hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.verifications.MarkUsed(ctx, verification.ID); err != nil {
		return err
	}

	// Every open session dies with the old password.
	_ = s.sessions.DeleteAllByUser(ctx, user.ID)
	_ = s.logActivity(ctx, &user.ID, nil, entity.ActionPasswordReset, "user", &user.ID, map[string]any{"stage": "completed"})
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.DeleteAllByUser(ctx, userID)
}

func (s *AuthService) sendEmailVerification(ctx context.Context, user *entity.User) error {
	if s.emailSender == nil {
		return nil
	}
	token, err := s.createVerificationToken(ctx, user, entity.EmailVerify, s.verificationTokenTTL())
	if err != nil {
		return err
	}
	return s.emailSender.SendVerificationEmail(ctx, user.Email, token)
}

func (s *AuthService) createVerificationToken(
	ctx context.Context,
	user *entity.User,
	tokenType entity.VerificationType,
	ttl time.Duration,
) (string, error) {
	rawToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		return "", err
	}

	verification := &entity.VerificationToken{
		UserID:     user.ID,
		Identifier: user.Email,
		TokenHash:  utils.HashToken(rawToken),
		Type:       tokenType,
		ExpiresAt:  s.now().Add(ttl),
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return "", err
	}
	return rawToken, nil
}

func (s *AuthService) logActivity(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.ActivityAction,
	entityName string,
	entityID *uuid.UUID,
	metadata map[string]any,
) error {
	if s.activity == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.ActivityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		Metadata:  payload,
	}
	return s.activity.Log(ctx, log)
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.config.SessionTTL > 0 {
		return s.config.SessionTTL
	}
	return 7 * 24 * time.Hour
}

func (s *AuthService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}

func (s *AuthService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return time.Hour
}
