package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/Skotchmaster/job_portal/pkg/db"
	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/pkg/logging"
	loggingmw "github.com/Skotchmaster/job_portal/pkg/middleware/logging"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	"github.com/Skotchmaster/job_portal/pkg/transport"

	authcfg "github.com/Skotchmaster/job_portal/services/auth/internal/config"
	"github.com/Skotchmaster/job_portal/services/auth/internal/httpserver"
	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
	"github.com/Skotchmaster/job_portal/services/auth/internal/repo"
	"github.com/Skotchmaster/job_portal/services/auth/internal/service"
)

func main() {
	if err := godotenv.Load("services/auth/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := authcfg.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel).With("service", "auth")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL, &models.User{}, &models.RefreshToken{})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers)

	r := &repo.GormRepo{DB: db}
	svc := &service.AuthService{
		Repo:          r,
		RefreshTokens: service.NewRefreshTokens(r, cfg.RefreshTTL),
		Codec:         tokens.NewCodec(cfg.JWTSecret),
		AccessTTL:     cfg.AccessTTL,
		Events:        publisher,
	}

	if cfg.AdminUsername != "" {
		bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := svc.EnsureAdmin(bootCtx, cfg.AdminUsername, cfg.AdminPassword)
		bootCancel()
		if err != nil {
			log.Fatalf("bootstrap admin: %v", err)
		}
		logger.Info("admin_bootstrapped", "username", cfg.AdminUsername)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = transport.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{AuthHandler: &httpserver.AuthHTTP{Svc: svc}})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("auth listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Error("publisher_close_failed", "error", err)
	}
	pkgdb.Close(db)

	logger.Info("auth stopped")
}
