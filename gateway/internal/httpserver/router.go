package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/gateway/internal/middleware"
)

type Deps struct {
	AuthURL    string
	CompanyURL string
	JobURL     string
	RatingURL  string

	Logger *slog.Logger
}

// Register mounts the reverse proxies. Authorization headers pass through
// untouched; each service authenticates its own requests.
func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, m := range middleware.Common(logger) {
		e.Use(m)
	}

	authProxy, err := newProxy("auth", d.AuthURL)
	if err != nil {
		return err
	}
	companyProxy, err := newProxy("company", d.CompanyURL)
	if err != nil {
		return err
	}
	jobProxy, err := newProxy("job", d.JobURL)
	if err != nil {
		return err
	}
	ratingProxy, err := newProxy("rating", d.RatingURL)
	if err != nil {
		return err
	}

	e.Any("/api/v1/auth/*", authProxy)
	e.Any("/companies", companyProxy)
	e.Any("/companies/*", companyProxy)
	e.Any("/jobs", jobProxy)
	e.Any("/jobs/*", jobProxy)
	e.Any("/ratings", ratingProxy)
	e.Any("/ratings/*", ratingProxy)

	return nil
}
