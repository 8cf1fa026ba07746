package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
)

type Deps struct {
	JobHandler *JobHTTP
	Auth       *middleware.Interceptor
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	admin := middleware.RequireRole(tokens.RoleAdmin)

	jobs := e.Group("/jobs", d.Auth.Authenticate, middleware.RequireAuthenticated())
	jobs.GET("", d.JobHandler.ListJobs)
	jobs.GET("/search", d.JobHandler.Search)
	jobs.GET("/company/:companyId", d.JobHandler.ListByCompany)
	jobs.GET("/:id", d.JobHandler.GetJob)
	jobs.POST("", d.JobHandler.CreateJobs, admin)
	jobs.PUT("/:id", d.JobHandler.UpdateJob, admin)
	jobs.DELETE("/:id", d.JobHandler.DeleteJob, admin)
}
