package search

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/job_portal/services/job/internal/models"
)

// DBIndex searches the jobs table directly. Put and Remove are no-ops because
// the table is the index.
type DBIndex struct {
	DB *gorm.DB
}

func (DBIndex) Put(context.Context, models.Job) error { return nil }
func (DBIndex) Remove(context.Context, string) error { return nil }

func (i DBIndex) Search(ctx context.Context, rawQ string, offset, limit int) (Results, error) {
	q := sanitizeQuery(rawQ)
	if q == "" {
		return Results{Items: []models.Job{}}, nil
	}

	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	where := `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`

	tx := i.DB.WithContext(ctx).Model(&models.Job{}).Where(where, pattern, pattern, pattern)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return Results{}, err
	}

	items := make([]models.Job, 0, limit)
	if err := i.DB.WithContext(ctx).
		Where(where, pattern, pattern, pattern).
		Order("title ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return Results{}, err
	}
	return Results{Total: total, Items: items}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
