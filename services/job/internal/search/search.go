package search

import (
	"context"
	"strings"

	"github.com/Skotchmaster/job_portal/services/job/internal/models"
)

// Index keeps a searchable copy of jobs.
type Index interface {
	Put(ctx context.Context, job models.Job) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, offset, limit int) (Results, error)
}

type Results struct {
	Total int64
	Items []models.Job
}

func sanitizeQuery(q string) string {
	return strings.TrimSpace(q)
}
