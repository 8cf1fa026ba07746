package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
	"github.com/Skotchmaster/job_portal/pkg/pagination"
	pkgtransport "github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/job/internal/repo"
	"github.com/Skotchmaster/job_portal/services/job/internal/service"
	"github.com/Skotchmaster/job_portal/services/job/internal/transport"
)

type JobHTTP struct {
	Svc *service.JobService
}

func authHeader(c echo.Context) string {
	return c.Request().Header.Get(echo.HeaderAuthorization)
}

func (h *JobHTTP) ListJobs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.list")

	items, err := h.Svc.ListJobs(ctx, authHeader(c))
	if err != nil {
		return h.fail(l, "list_jobs_error", "", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *JobHTTP) ListByCompany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.list_by_company")

	companyID := c.Param("companyId")
	items, err := h.Svc.ListByCompany(ctx, authHeader(c), companyID)
	if err != nil {
		return h.fail(l, "list_jobs_by_company_error", companyID, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *JobHTTP) GetJob(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.get")

	id := c.Param("id")
	job, err := h.Svc.GetJob(ctx, authHeader(c), id)
	if err != nil {
		return h.fail(l, "get_job_error", id, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHTTP) CreateJobs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.create")

	var req []transport.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_jobs_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.CreateJobs(ctx, req)
	if err != nil {
		return h.fail(l, "create_jobs_error", "", err)
	}

	l.Info("create_jobs_success", "count", len(items))
	return c.JSON(http.StatusCreated, pkgtransport.OK("Job Created Successfully"))
}

func (h *JobHTTP) UpdateJob(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.update")

	var req transport.UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_job_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id := c.Param("id")
	job, err := h.Svc.UpdateJob(ctx, id, req)
	if err != nil {
		return h.fail(l, "update_job_error", id, err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *JobHTTP) DeleteJob(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.delete")

	id := c.Param("id")
	job, err := h.Svc.DeleteJob(ctx, id)
	if err != nil {
		return h.fail(l, "delete_job_error", id, err)
	}

	l.Info("delete_job_success", "id", id)
	return c.JSON(http.StatusOK, pkgtransport.OK(fmt.Sprintf("Job with Title %s is deleted successfully", job.Title)))
}

func (h *JobHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "job.search")

	q := c.QueryParam("q")
	page := pagination.ParseIntDefault(c.QueryParam("page"), 1)
	size := pagination.ParseIntDefault(c.QueryParam("size"), pagination.DefaultPageSize)

	res, err := h.Svc.Search(ctx, q, page, size)
	if err != nil {
		l.Error("search_jobs_error", "status", 500, "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *JobHTTP) fail(l *slog.Logger, event, id string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		l.Warn(event, "status", 404, "id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Job not found with id: "+id)
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDependency):
		l.Error(event, "status", 502, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "dependency unavailable")
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
