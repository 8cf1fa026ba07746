package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/pkg/logging"
	"github.com/Skotchmaster/job_portal/pkg/pagination"
	"github.com/Skotchmaster/job_portal/services/job/internal/models"
	"github.com/Skotchmaster/job_portal/services/job/internal/repo"
	"github.com/Skotchmaster/job_portal/services/job/internal/search"
	"github.com/Skotchmaster/job_portal/services/job/internal/transport"
)

const JobEventsTopic = "job_events"

var (
	ErrValidation = errors.New("validation")
	// ErrDependency means the company or rating service could not answer.
	ErrDependency = errors.New("dependency failed")
)

type CompanyFetcher interface {
	GetCompany(ctx context.Context, authHeader, id string) (*transport.Company, error)
}

type RatingFetcher interface {
	ListRatings(ctx context.Context, authHeader, companyID string) ([]transport.Rating, error)
}

type JobService struct {
	Repo      *repo.GormRepo
	Companies CompanyFetcher
	Ratings   RatingFetcher
	Index     search.Index
	Events    events.Publisher
}

func (s *JobService) ListJobs(ctx context.Context, authHeader string) ([]transport.JobDTO, error) {
	jobs, err := s.Repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, authHeader, jobs)
}

func (s *JobService) ListByCompany(ctx context.Context, authHeader, companyID string) ([]transport.JobDTO, error) {
	jobs, err := s.Repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, authHeader, jobs)
}

func (s *JobService) GetJob(ctx context.Context, authHeader, id string) (*transport.JobDTO, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.enrich(ctx, authHeader, []models.Job{*job})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *JobService) CreateJobs(ctx context.Context, req []transport.CreateJobRequest) ([]models.Job, error) {
	if len(req) == 0 {
		return nil, fmt.Errorf("%w: at least one job is required", ErrValidation)
	}

	jobs := make([]models.Job, 0, len(req))
	for i, r := range req {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: job %d: title is required", ErrValidation, i)
		}
		if strings.TrimSpace(r.CompanyID) == "" {
			return nil, fmt.Errorf("%w: job %d: companyId is required", ErrValidation, i)
		}
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		jobs = append(jobs, models.Job{
			ID:          id,
			Title:       r.Title,
			Description: r.Description,
			MinSalary:   r.MinSalary,
			MaxSalary:   r.MaxSalary,
			Location:    r.Location,
			CompanyID:   r.CompanyID,
		})
	}

	if err := s.Repo.CreateJobs(ctx, jobs); err != nil {
		return nil, err
	}

	for _, j := range jobs {
		s.put(ctx, j)
		events.Emit(ctx, s.Events, JobEventsTopic, events.NewEvent("job_created", j.ID, j))
	}
	return jobs, nil
}

func (s *JobService) UpdateJob(ctx context.Context, id string, req transport.UpdateJobRequest) (*models.Job, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		job.Title = *req.Title
	}
	if req.CompanyID != nil {
		if strings.TrimSpace(*req.CompanyID) == "" {
			return nil, fmt.Errorf("%w: companyId cannot be empty", ErrValidation)
		}
		job.CompanyID = *req.CompanyID
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.MinSalary != nil {
		job.MinSalary = *req.MinSalary
	}
	if req.MaxSalary != nil {
		job.MaxSalary = *req.MaxSalary
	}
	if req.Location != nil {
		job.Location = *req.Location
	}

	if err := s.Repo.SaveJob(ctx, job); err != nil {
		return nil, err
	}

	s.put(ctx, *job)
	events.Emit(ctx, s.Events, JobEventsTopic, events.NewEvent("job_updated", job.ID, job))
	return job, nil
}

func (s *JobService) DeleteJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.Repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteJob(ctx, id); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_remove_error", "id", id, "error", err)
		}
	}
	events.Emit(ctx, s.Events, JobEventsTopic, events.NewEvent("job_deleted", job.ID, nil))
	return job, nil
}

func (s *JobService) Search(ctx context.Context, q string, page, size int) (transport.SearchResponse, error) {
	offset, limit := pagination.Calculate(page, size)

	res, err := s.Index.Search(ctx, q, offset, limit)
	if err != nil {
		return transport.SearchResponse{}, err
	}
	if res.Items == nil {
		res.Items = []models.Job{}
	}
	return transport.SearchResponse{
		Items: res.Items,
		Meta:  pagination.NewMeta(page, offset, limit, res.Total),
	}, nil
}

// put keeps the search index in step with the table. The table is the source
// of truth, so index failures are logged rather than returned.
func (s *JobService) put(ctx context.Context, j models.Job) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Put(ctx, j); err != nil {
		logging.FromContext(ctx).Warn("search_index_put_error", "id", j.ID, "error", err)
	}
}

// enrich attaches company and ratings to each job, fetching every company once.
func (s *JobService) enrich(ctx context.Context, authHeader string, jobs []models.Job) ([]transport.JobDTO, error) {
	type companyInfo struct {
		company *transport.Company
		ratings []transport.Rating
	}
	seen := make(map[string]companyInfo)

	out := make([]transport.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		info, ok := seen[j.CompanyID]
		if !ok {
			company, err := s.Companies.GetCompany(ctx, authHeader, j.CompanyID)
			if err != nil {
				return nil, fmt.Errorf("%w: company %s: %v", ErrDependency, j.CompanyID, err)
			}
			ratings, err := s.Ratings.ListRatings(ctx, authHeader, j.CompanyID)
			if err != nil {
				return nil, fmt.Errorf("%w: ratings for %s: %v", ErrDependency, j.CompanyID, err)
			}
			info = companyInfo{company: company, ratings: ratings}
			seen[j.CompanyID] = info
		}
		out = append(out, transport.NewJobDTO(j, info.company, info.ratings))
	}
	return out, nil
}
