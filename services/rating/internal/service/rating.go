package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/job_portal/pkg/events"
	"github.com/Skotchmaster/job_portal/services/rating/internal/models"
	"github.com/Skotchmaster/job_portal/services/rating/internal/repo"
	"github.com/Skotchmaster/job_portal/services/rating/internal/transport"
)

const (
	RatingEventsTopic = "rating_events"

	MinScore = 0
	MaxScore = 5
)

var ErrValidation = errors.New("validation")

type RatingService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *RatingService) ListByCompany(ctx context.Context, companyID string) ([]models.Rating, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, fmt.Errorf("%w: companyId is required", ErrValidation)
	}
	return s.Repo.ListByCompany(ctx, companyID)
}

func (s *RatingService) GetRating(ctx context.Context, id string) (*models.Rating, error) {
	return s.Repo.GetRating(ctx, id)
}

func (s *RatingService) CreateRating(ctx context.Context, companyID string, req transport.CreateRatingRequest) (*models.Rating, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, fmt.Errorf("%w: companyId is required", ErrValidation)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := checkScore(req.Ratings); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Feedback:  req.Feedback,
		Ratings:   req.Ratings,
		CompanyID: companyID,
	}
	if err := s.Repo.CreateRating(ctx, rating); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, RatingEventsTopic, events.NewEvent("rating_created", rating.ID, rating))
	return rating, nil
}

func (s *RatingService) UpdateRating(ctx context.Context, id string, req transport.UpdateRatingRequest) (*models.Rating, error) {
	rating, err := s.Repo.GetRating(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		rating.Title = *req.Title
	}
	if req.Feedback != nil {
		rating.Feedback = *req.Feedback
	}
	if req.Ratings != nil {
		if err := checkScore(*req.Ratings); err != nil {
			return nil, err
		}
		rating.Ratings = *req.Ratings
	}

	if err := s.Repo.SaveRating(ctx, rating); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, RatingEventsTopic, events.NewEvent("rating_updated", rating.ID, rating))
	return rating, nil
}

func (s *RatingService) DeleteRating(ctx context.Context, id string) (*models.Rating, error) {
	rating, err := s.Repo.GetRating(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteRating(ctx, id); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.Events, RatingEventsTopic, events.NewEvent("rating_deleted", rating.ID, nil))
	return rating, nil
}

func checkScore(v float64) error {
	if v < MinScore || v > MaxScore {
		return fmt.Errorf("%w: ratings must be between %d and %d", ErrValidation, MinScore, MaxScore)
	}
	return nil
}
