package transport

import (
	"github.com/Skotchmaster/job_portal/pkg/pagination"
	"github.com/Skotchmaster/job_portal/services/job/internal/models"
)

type CreateJobRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MinSalary   string `json:"minSalary"`
	MaxSalary   string `json:"maxSalary"`
	Location    string `json:"location"`
	CompanyID   string `json:"companyId"`
}

type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	MinSalary   *string `json:"minSalary"`
	MaxSalary   *string `json:"maxSalary"`
	Location    *string `json:"location"`
	CompanyID   *string `json:"companyId"`
}

// Company and Rating mirror what the company and rating services return.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Rating struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Feedback  string  `json:"feedback"`
	Ratings   float64 `json:"ratings"`
	CompanyID string  `json:"companyId"`
}

type JobDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MinSalary   string   `json:"minSalary"`
	MaxSalary   string   `json:"maxSalary"`
	Location    string   `json:"location"`
	Company     *Company `json:"company"`
	Ratings     []Rating `json:"ratings"`
}

func NewJobDTO(j models.Job, company *Company, ratings []Rating) JobDTO {
	if ratings == nil {
		ratings = []Rating{}
	}
	return JobDTO{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		MinSalary:   j.MinSalary,
		MaxSalary:   j.MaxSalary,
		Location:    j.Location,
		Company:     company,
		Ratings:     ratings,
	}
}

type SearchResponse struct {
	Items []models.Job    `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}
