package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/services/company/internal/models"
	"github.com/Skotchmaster/job_portal/services/company/internal/repo"
	"github.com/Skotchmaster/job_portal/services/company/internal/transport"
)

const CompanyEventsTopic = "company_events"

var ErrValidation = errors.New("validation failed")

type CompanyService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.Repo.ListCompanies(ctx)
}

func (s *CompanyService) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	return s.Repo.GetCompany(ctx, id)
}

func (s *CompanyService) CreateCompanies(ctx context.Context, reqs []transport.CreateCompanyRequest) ([]models.Company, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one company is required", ErrValidation)
	}

	items := make([]models.Company, 0, len(reqs))
	for i, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: company %d has no name", ErrValidation, i)
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, models.Company{ID: id, Name: name, Description: req.Description})
	}

	if err := s.Repo.CreateCompanies(ctx, items); err != nil {
		return nil, err
	}

	for _, c := range items {
		events.Emit(ctx, s.Events, CompanyEventsTopic, events.NewEvent("company_created", c.ID, c))
	}
	return items, nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id string, req transport.UpdateCompanyRequest) (*models.Company, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}

	company, err := s.Repo.UpdateCompany(ctx, id, req)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, CompanyEventsTopic, events.NewEvent("company_updated", company.ID, company))
	return company, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := s.Repo.DeleteCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, CompanyEventsTopic, events.NewEvent("company_deleted", company.ID, nil))
	return company, nil
}
