package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
	"github.com/Skotchmaster/job_portal/services/auth/internal/repo"
)

var testSecret = []byte("test-jwt-secret")

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(events.Event); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type testEnv struct {
	db     *gorm.DB
	repo   *repo.GormRepo
	svc    *AuthService
	events *recordingPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := InitTestDB(t)
	r := &repo.GormRepo{DB: db}
	pub := &recordingPublisher{}

	return &testEnv{
		db:   db,
		repo: r,
		svc: &AuthService{
			Repo:          r,
			RefreshTokens: NewRefreshTokens(r, 7*24*time.Hour),
			Codec:         tokens.NewCodec(testSecret),
			AccessTTL:     15 * time.Minute,
			Events:        pub,
		},
		events: pub,
	}
}
