package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/services/job/internal/models"
)

var ErrNotFound = errors.New("job not found")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) ListJobs(ctx context.Context) ([]models.Job, error) {
	items := make([]models.Job, 0)
	if err := r.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	items := make([]models.Job, 0)
	if err := r.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *GormRepo) CreateJobs(ctx context.Context, jobs []models.Job) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&jobs).Error
	})
}

func (r *GormRepo) SaveJob(ctx context.Context, job *models.Job) error {
	return r.DB.WithContext(ctx).Save(job).Error
}

func (r *GormRepo) DeleteJob(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
