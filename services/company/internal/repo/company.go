package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/services/company/internal/models"
	"github.com/Skotchmaster/job_portal/services/company/internal/transport"
)

var ErrNotFound = errors.New("company not found")

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	items := make([]models.Company, 0)
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var company models.Company
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// CreateCompanies inserts the whole batch or nothing.
func (r *GormRepo) CreateCompanies(ctx context.Context, items []models.Company) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&items).Error
	})
}

func (r *GormRepo) UpdateCompany(ctx context.Context, id string, req transport.UpdateCompanyRequest) (*models.Company, error) {
	company, err := r.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}

	if err := r.DB.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// DeleteCompany removes the company and returns it as it was.
func (r *GormRepo) DeleteCompany(ctx context.Context, id string) (*models.Company, error) {
	company, err := r.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	res := r.DB.WithContext(ctx).Delete(&models.Company{}, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return company, nil
}
