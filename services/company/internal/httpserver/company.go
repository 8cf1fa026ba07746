package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
	pkgtransport "github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/company/internal/repo"
	"github.com/Skotchmaster/job_portal/services/company/internal/service"
	"github.com/Skotchmaster/job_portal/services/company/internal/transport"
)

type CompanyHTTP struct {
	Svc *service.CompanyService
}

func (h *CompanyHTTP) ListCompanies(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "company.list")

	items, err := h.Svc.ListCompanies(ctx)
	if err != nil {
		l.Error("list_companies_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list companies")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CompanyHTTP) GetCompany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "company.get")

	id := c.Param("id")
	company, err := h.Svc.GetCompany(ctx, id)
	if err != nil {
		return h.fail(l, "get_company_error", id, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHTTP) CreateCompanies(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "company.create")

	var req []transport.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_companies_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	items, err := h.Svc.CreateCompanies(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_companies_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_companies_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create companies")
	}

	l.Info("create_companies_success", "count", len(items))
	return c.JSON(http.StatusCreated, pkgtransport.OK("Company Created Successfully"))
}

func (h *CompanyHTTP) UpdateCompany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "company.update")

	var req transport.UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_company_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id := c.Param("id")
	company, err := h.Svc.UpdateCompany(ctx, id, req)
	if err != nil {
		return h.fail(l, "update_company_error", id, err)
	}
	return c.JSON(http.StatusOK, company)
}

func (h *CompanyHTTP) DeleteCompany(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "company.delete")

	id := c.Param("id")
	company, err := h.Svc.DeleteCompany(ctx, id)
	if err != nil {
		return h.fail(l, "delete_company_error", id, err)
	}

	l.Info("delete_company_success", "id", id)
	return c.JSON(http.StatusOK, pkgtransport.OK(fmt.Sprintf("Company with Name %s is deleted successfully", company.Name)))
}

func (h *CompanyHTTP) fail(l *slog.Logger, event, id string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		l.Warn(event, "status", 404, "id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Company not found with id: "+id)
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
