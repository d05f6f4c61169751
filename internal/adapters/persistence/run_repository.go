package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/eartask-go/internal/domain/batch"
)

// GormRunRepository implements RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM batch run repository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Add persists a finished run
func (r *GormRunRepository) Add(ctx context.Context, run *batch.Run) error {
	model := &BatchRunModel{
		ID:           run.ID,
		Kind:         string(run.Kind),
		Total:        run.Total,
		SuccessCount: run.SuccessCount,
		FailCount:    run.FailCount,
		StoppedEarly: run.StoppedEarly,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add batch run: %w", err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first
func (r *GormRunRepository) ListRecent(ctx context.Context, limit int) ([]*batch.Run, error) {
	var models []BatchRunModel
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}

	runs := make([]*batch.Run, 0, len(models))
	for _, model := range models {
		runs = append(runs, &batch.Run{
			ID:           model.ID,
			Kind:         batch.Kind(model.Kind),
			Total:        model.Total,
			SuccessCount: model.SuccessCount,
			FailCount:    model.FailCount,
			StoppedEarly: model.StoppedEarly,
			StartedAt:    model.StartedAt,
			FinishedAt:   model.FinishedAt,
		})
	}
	return runs, nil
}
