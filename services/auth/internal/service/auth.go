package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/job_portal/pkg/events"
	pkghash "github.com/Skotchmaster/job_portal/pkg/hash"
	"github.com/Skotchmaster/job_portal/pkg/logging"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	"github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
	"github.com/Skotchmaster/job_portal/services/auth/internal/repo"
)

const (
	UserEventsTopic = "user_events"

	MinPasswordLen = 5
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type AuthService struct {
	Repo          *repo.GormRepo
	RefreshTokens *RefreshTokens
	Codec         *tokens.Codec
	AccessTTL     time.Duration
	Events        events.Publisher
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username = normalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLen)
	}

	pwHash, err := pkghash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         tokens.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, ErrUsernameTaken
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	res, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, UserEventsTopic, events.NewEvent("user_registered", user.Username, map[string]string{"role": user.Role}))
	return res, nil
}

// Authenticate answers ErrInvalidCredentials for both an unknown username
// and a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.Repo.GetUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !pkghash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	res, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, UserEventsTopic, events.NewEvent("user_logged_in", user.Username, nil))
	return res, nil
}

// Refresh signs a new access token for the owner of refreshValue. The
// refresh token itself is returned unchanged.
func (s *AuthService) Refresh(ctx context.Context, refreshValue string) (*AuthResult, error) {
	rt, err := s.RefreshTokens.Verify(ctx, refreshValue)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	access, err := s.sign(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: access, RefreshToken: rt.Token}, nil
}

// Validate never fails: anything short of a verified token whose subject
// still exists is reported as invalid.
func (s *AuthService) Validate(ctx context.Context, authHeader string) transport.ValidationResponse {
	l := logging.FromContext(ctx).With("svc", "auth.validate")
	invalid := transport.ValidationResponse{Valid: false}

	token, ok := tokens.FromBearer(authHeader)
	if !ok {
		return invalid
	}

	subject, err := tokens.ExtractSubject(token)
	if err != nil {
		return invalid
	}

	claims, err := s.Codec.Verify(token)
	if err != nil {
		l.Debug("token_rejected", "reason", err.Error())
		return invalid
	}
	if claims.Subject != subject {
		return invalid
	}

	user, err := s.Repo.GetUserByUsername(ctx, subject)
	if err != nil {
		if !errors.Is(err, repo.ErrUserNotFound) {
			l.Error("validate_error", "reason", "cannot load user", "error", err)
		}
		return invalid
	}

	return transport.ValidationResponse{Valid: true, Role: user.Role}
}

// Logout drops the caller's refresh token. The access token identifies the
// caller; a refresh token belonging to someone else is left alone.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshValue string) error {
	claims, err := s.Codec.Verify(accessToken)
	if err != nil {
		return ErrUnauthenticated
	}
	user, err := s.Repo.GetUserByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return ErrUnauthenticated
		}
		return fmt.Errorf("load user: %w", err)
	}

	n, err := s.Repo.DeleteUserRefresh(ctx, user.ID, refreshValue)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	logging.FromContext(ctx).Info("logout", "username", user.Username, "revoked", n)
	return nil
}

// EnsureAdmin creates username as ADMIN, or promotes and re-keys an
// existing account.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = normalizeUsername(username)
	if username == "" || len(password) < MinPasswordLen {
		return fmt.Errorf("%w: admin credentials", ErrValidation)
	}
	pwHash, err := pkghash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: pwHash, Role: tokens.RoleAdmin}
	err = s.Repo.CreateUserIfNotExists(ctx, user)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrUserAlreadyExist) {
		return fmt.Errorf("create admin: %w", err)
	}

	existing, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("load admin: %w", err)
	}
	existing.Role = tokens.RoleAdmin
	existing.PasswordHash = pwHash
	return s.Repo.UpdateUser(ctx, existing)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	rt, err := s.RefreshTokens.IssueOrRotate(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	access, err := s.sign(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: access, RefreshToken: rt.Token}, nil
}

func (s *AuthService) sign(user *models.User) (string, error) {
	return s.Codec.Sign(user.Username, map[string]any{tokens.RoleClaim: user.Role}, s.AccessTTL)
}

// normalizeUsername is applied wherever a username enters the service.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}
