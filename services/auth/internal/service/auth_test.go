package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/job_portal/pkg/tokens"
	"github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
)

func TestAuthService_EndToEnd(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	reg, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, reg.AccessToken)
	require.NotEmpty(t, reg.RefreshToken)

	v := env.svc.Validate(ctx, "Bearer "+reg.AccessToken)
	assert.Equal(t, transport.ValidationResponse{Valid: true, Role: tokens.RoleUser}, v)

	login, err := env.svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, login.RefreshToken)

	_, err = env.svc.Refresh(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	refreshed, err := env.svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)
	assert.NotEqual(t, reg.AccessToken, refreshed.AccessToken)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)
	assert.True(t, env.svc.Validate(ctx, "Bearer "+refreshed.AccessToken).Valid)

	assert.Equal(t, []string{"user_registered", "user_logged_in"}, env.events.types())
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret1"},
		{name: "blank username", username: "   ", password: "secret1"},
		{name: "empty password", username: "user", password: ""},
		{name: "short password", username: "user", password: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var n int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, err = env.svc.Register(ctx, "alice", "another-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = env.svc.Authenticate(ctx, "alice", "secret1")
	assert.NoError(t, err)
}

func TestAuthService_Authenticate_UniformFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	_, wrongPassword := env.svc.Authenticate(ctx, "alice", "wrong-password")
	_, unknownUser := env.svc.Authenticate(ctx, "bob", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_UsernameNormalizedOnLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "alice ", "secret1")
	require.NoError(t, err)

	for _, name := range []string{"alice ", "alice", "  alice"} {
		_, err := env.svc.Authenticate(ctx, name, "secret1")
		assert.NoError(t, err, "%q", name)
	}

	_, err = env.svc.Register(ctx, " alice", "secret2")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Validate_Rejects(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	foreign, err := tokens.NewCodec([]byte("other-secret")).
		Sign("alice", map[string]any{tokens.RoleClaim: tokens.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	ghost, err := env.svc.Codec.Sign("ghost", map[string]any{tokens.RoleClaim: tokens.RoleUser}, time.Minute)
	require.NoError(t, err)

	parts := strings.Split(res.AccessToken, ".")
	ghostParts := strings.Split(ghost, ".")
	tampered := parts[0] + "." + ghostParts[1] + "." + parts[2]

	headers := map[string]string{
		"empty":            "",
		"bare prefix":      "Bearer ",
		"basic":            "Basic xyz",
		"lowercase prefix": "bearer " + res.AccessToken,
		"no prefix":        res.AccessToken,
		"garbage":          "Bearer garbage",
		"foreign secret":   "Bearer " + foreign,
		"unknown subject":  "Bearer " + ghost,
		"tampered payload": "Bearer " + tampered,
	}

	for name, h := range headers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, transport.ValidationResponse{Valid: false}, env.svc.Validate(ctx, h))
		})
	}
}

func TestAuthService_Validate_Expired(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	old, err := env.svc.Codec.WithClock(func() time.Time { return issued }).
		Sign("alice", map[string]any{tokens.RoleClaim: tokens.RoleUser}, 15*time.Minute)
	require.NoError(t, err)

	assert.False(t, env.svc.Validate(ctx, "Bearer "+old).Valid)
}

func TestAuthService_Validate_RoleComesFromStore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&models.User{}).Where("username = ?", "alice").Update("role", tokens.RoleAdmin).Error)

	v := env.svc.Validate(ctx, "Bearer "+res.AccessToken)
	assert.True(t, v.Valid)
	assert.Equal(t, tokens.RoleAdmin, v.Role)
}

func TestAuthService_Refresh_Expired(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)

	env.svc.RefreshTokens.Now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err = env.svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = env.svc.Refresh(ctx, res.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.svc.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	bob, err := env.svc.Register(ctx, "bob", "secret2")
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(ctx, alice.AccessToken, bob.RefreshToken))
	_, err = env.svc.Refresh(ctx, bob.RefreshToken)
	require.NoError(t, err, "another user's refresh token must survive")

	require.NoError(t, env.svc.Logout(ctx, alice.AccessToken, alice.RefreshToken))
	_, err = env.svc.Refresh(ctx, alice.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	assert.NoError(t, env.svc.Logout(ctx, alice.AccessToken, alice.RefreshToken))
	assert.ErrorIs(t, env.svc.Logout(ctx, "garbage", alice.RefreshToken), ErrUnauthenticated)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.svc.EnsureAdmin(ctx, "root", "rootpass"))
	res, err := env.svc.Authenticate(ctx, "root", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, env.svc.Validate(ctx, "Bearer "+res.AccessToken).Role)

	_, err = env.svc.Register(ctx, "carol", "secret3")
	require.NoError(t, err)
	require.NoError(t, env.svc.EnsureAdmin(ctx, "carol", "newpass"))

	_, err = env.svc.Authenticate(ctx, "carol", "secret3")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	res, err = env.svc.Authenticate(ctx, "carol", "newpass")
	require.NoError(t, err)
	assert.Equal(t, tokens.RoleAdmin, env.svc.Validate(ctx, "Bearer "+res.AccessToken).Role)

	assert.ErrorIs(t, env.svc.EnsureAdmin(ctx, "", "x"), ErrValidation)
}
