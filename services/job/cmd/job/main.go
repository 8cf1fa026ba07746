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

	"github.com/Skotchmaster/job_portal/services/job/internal/clients"
	"github.com/Skotchmaster/job_portal/services/job/internal/config"
	"github.com/Skotchmaster/job_portal/services/job/internal/httpserver"
	"github.com/Skotchmaster/job_portal/services/job/internal/models"
	"github.com/Skotchmaster/job_portal/services/job/internal/repo"
	"github.com/Skotchmaster/job_portal/services/job/internal/search"
	"github.com/Skotchmaster/job_portal/services/job/internal/service"
)

func main() {
	if err := godotenv.Load("services/job/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "job")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL, &models.Job{})
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	var index search.Index = search.DBIndex{DB: db}
	if cfg.ESURL != "" {
		es, err := search.NewElasticIndex(search.ElasticConfig{
			URL:      cfg.ESURL,
			User:     cfg.ESUser,
			Password: cfg.ESPassword,
			Index:    cfg.ESIndex,
		})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		index = es
		logger.Info("search_backend", "backend", "elasticsearch", "index", cfg.ESIndex)
	} else {
		logger.Info("search_backend", "backend", "database")
	}

	publisher := events.New(cfg.KafkaBrokers)

	svc := &service.JobService{
		Repo:      &repo.GormRepo{DB: db},
		Companies: clients.NewCompanyClient(cfg.CompanyURL, cfg.UpstreamTimeout),
		Ratings:   clients.NewRatingClient(cfg.RatingURL, cfg.UpstreamTimeout),
		Index:     index,
		Events:    publisher,
	}
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
		JobHandler: &httpserver.JobHTTP{Svc: svc},
		Auth:       middleware.NewInterceptor(client, cfg.AuthCacheTTL),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("job listening", "addr", srv.Addr)
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

	logger.Info("job stopped")
}
