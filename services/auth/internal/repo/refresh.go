package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/job_portal/services/auth/internal/models"
)

// UpsertRefresh stores rt as the user's only refresh token, replacing the
// value and expiry of an existing row.
func (r *GormRepo) UpsertRefresh(ctx context.Context, rt *models.RefreshToken) error {
	return r.DB.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
		}).
		Create(rt).Error
}

func (r *GormRepo) GetRefreshByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *GormRepo) GetRefreshByUserID(ctx context.Context, userID uint) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *GormRepo) DeleteRefreshByToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *GormRepo) DeleteUserRefresh(ctx context.Context, userID uint, token string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
