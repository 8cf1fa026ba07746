package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/services/rating/internal/models"
)

var ErrNotFound = errors.New("rating not found")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Rating, error) {
	items := make([]models.Rating, 0)
	if err := r.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetRating(ctx context.Context, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *GormRepo) CreateRating(ctx context.Context, rating *models.Rating) error {
	return r.DB.WithContext(ctx).Create(rating).Error
}

func (r *GormRepo) SaveRating(ctx context.Context, rating *models.Rating) error {
	return r.DB.WithContext(ctx).Save(rating).Error
}

func (r *GormRepo) DeleteRating(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
