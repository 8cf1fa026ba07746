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

	"github.com/Skotchmaster/job_portal/pkg/authclient"
	pkgdb "github.com/Skotchmaster/job_portal/pkg/db"
	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/pkg/logging"
	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	loggingmw "github.com/Skotchmaster/job_portal/pkg/middleware/logging"
	"github.com/Skotchmaster/job_portal/pkg/transport"

	"github.com/Skotchmaster/job_portal/services/rating/internal/config"
	"github.com/Skotchmaster/job_portal/services/rating/internal/httpserver"
	"github.com/Skotchmaster/job_portal/services/rating/internal/models"
	"github.com/Skotchmaster/job_portal/services/rating/internal/repo"
	"github.com/Skotchmaster/job_portal/services/rating/internal/service"
)

func main() {
	if err := godotenv.Load("services/rating/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "rating")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL, &models.Rating{})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers)

	svc := &service.RatingService{Repo: &repo.GormRepo{DB: db}, Events: publisher}
	client := authclient.NewClient(cfg.AuthHTTPURL,
		authclient.WithTimeout(cfg.AuthTimeout),
		authclient.WithRetries(cfg.AuthRetries),
	)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = transport.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		RatingHandler: &httpserver.RatingHTTP{Svc: svc},
		Auth:          middleware.NewInterceptor(client, cfg.AuthCacheTTL),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("rating listening", "addr", srv.Addr)
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
	_ = publisher.Close()
	pkgdb.Close(db)

	logger.Info("rating stopped")
}
