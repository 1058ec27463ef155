package runs

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/qawash/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogRun saves the outcome of washing one file.
func (r *Repository) LogRun(run *entities.WashRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return r.db.Create(run).Error
}

// GetRecentRuns returns the latest runs, most recent first.
func (r *Repository) GetRecentRuns(limit int) ([]entities.WashRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var runs []entities.WashRun
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetRunsByCategory returns every run of one category, most recent first.
func (r *Repository) GetRunsByCategory(category string) ([]entities.WashRun, error) {
	var runs []entities.WashRun
	err := r.db.Where("category = ?", category).Order("created_at DESC").Order("id DESC").Find(&runs).Error
	return runs, err
}

// DeleteOlderThan removes runs created before the cutoff and returns how many were removed.
func (r *Repository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&entities.WashRun{})
	return result.RowsAffected, result.Error
}
