package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
	"github.com/Skotchmaster/job_portal/services/auth/internal/repo"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokens keeps at most one opaque refresh token per user.
type RefreshTokens struct {
	Repo *repo.GormRepo
	TTL  time.Duration
	Now  func() time.Time
}

func NewRefreshTokens(r *repo.GormRepo, ttl time.Duration) *RefreshTokens {
	return &RefreshTokens{Repo: r, TTL: ttl, Now: time.Now}
}

func (m *RefreshTokens) now() time.Time {
	if m.Now == nil {
		return time.Now().UTC()
	}
	return m.Now().UTC()
}

// IssueOrRotate gives username a fresh refresh token, replacing any previous one.
func (m *RefreshTokens) IssueOrRotate(ctx context.Context, username string) (*models.RefreshToken, error) {
	user, err := m.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	rt := &models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: m.now().Add(m.TTL),
	}
	if err := m.Repo.UpsertRefresh(ctx, rt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return rt, nil
}

// Verify returns the stored token for value. An expired token is deleted
// on sight, so presenting it again yields ErrTokenNotFound.
func (m *RefreshTokens) Verify(ctx context.Context, value string) (*models.RefreshToken, error) {
	rt, err := m.Repo.GetRefreshByToken(ctx, value)
	if err != nil {
		if errors.Is(err, repo.ErrRefreshNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}

	if !rt.ExpiresAt.After(m.now()) {
		if err := m.Repo.DeleteRefreshByToken(ctx, value); err != nil {
			return nil, fmt.Errorf("delete expired refresh token: %w", err)
		}
		return nil, ErrTokenExpired
	}
	return rt, nil
}
