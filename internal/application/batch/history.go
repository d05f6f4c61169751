package batch

import (
	"context"
	"time"

	"github.com/andrescamacho/eartask-go/internal/application/logging"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/pkg/utils"
)

// NewRun builds a run summary with a fresh ID
func NewRun(kind domainBatch.Kind, progress domainBatch.Progress, stoppedEarly bool, startedAt, finishedAt time.Time) *domainBatch.Run {
	return &domainBatch.Run{
		ID:           utils.GenerateRunID(string(kind)),
		Kind:         kind,
		Total:        progress.Total,
		SuccessCount: progress.SuccessCount,
		FailCount:    progress.FailCount,
		StoppedEarly: stoppedEarly,
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
	}
}

// SaveRun stores a run summary. History is best effort: a storage failure is
// logged and never changes the workflow outcome.
func SaveRun(ctx context.Context, repo domainBatch.RunRepository, run *domainBatch.Run) {
	if repo == nil || run == nil || run.Total == 0 {
		return
	}

	if err := repo.Add(ctx, run); err != nil {
		logging.LoggerFromContext(ctx).Log("WARNING", "Failed to save run history", map[string]interface{}{
			"run_id": run.ID,
			"kind":   string(run.Kind),
			"error":  err.Error(),
		})
	}
}
