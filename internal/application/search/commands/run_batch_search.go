package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// RunBatchSearchCommand spends every remaining free search of the day
type RunBatchSearchCommand struct{}

func (RunBatchSearchCommand) IsOperation() bool { return true }

// RunBatchSearchResponse carries the runner result and the profile to display
type RunBatchSearchResponse struct {
	Eligible bool
	Result   domainBatch.Result
	Profile  *search.Profile // refreshed after a run with at least one success
}

// RunBatchSearchHandler drives free searches through the sequential runner
type RunBatchSearchHandler struct {
	client   ports.GameClient
	runner   *batch.Runner
	notifier interaction.Notifier
	runs     domainBatch.RunRepository
	clock    shared.Clock
}

// NewRunBatchSearchHandler creates a new batch search handler
func NewRunBatchSearchHandler(
	client ports.GameClient,
	runner *batch.Runner,
	notifier interaction.Notifier,
	runs domainBatch.RunRepository,
	clock shared.Clock,
) *RunBatchSearchHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunBatchSearchHandler{
		client:   client,
		runner:   runner,
		notifier: notifier,
		runs:     runs,
		clock:    clock,
	}
}

// Handle executes the batch search command
func (h *RunBatchSearchHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*RunBatchSearchCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunBatchSearchCommand")
	}

	logger := common.LoggerFromContext(ctx)

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if h.runner.Running() {
		return nil, shared.ErrOperationInProgress
	}

	profile, err := h.client.GetSearchProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get search profile: %w", err)
	}

	if !profile.Eligible() {
		if h.notifier != nil {
			h.notifier.Notify("No free searches left today", interaction.KindInfo)
		}
		return &RunBatchSearchResponse{Profile: profile}, nil
	}

	total := profile.Remaining()
	logger.Log("INFO", "Starting batch search", map[string]interface{}{
		"total": total,
	})

	startedAt := h.clock.Now()
	result := h.runner.Run(ctx, total, func(ctx context.Context, attempt int) (bool, error) {
		return h.client.Search(ctx, token)
	})

	if result.Progress != nil {
		batch.SaveRun(ctx, h.runs, batch.NewRun(domainBatch.KindSearch, *result.Progress, result.StoppedEarly, startedAt, h.clock.Now()))
	}

	response := &RunBatchSearchResponse{
		Eligible: true,
		Result:   result,
		Profile:  profile,
	}

	if result.Success {
		refreshed, err := h.client.GetSearchProfile(ctx, token)
		if err != nil {
			logger.Log("ERROR", "Failed to refresh search profile", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			response.Profile = refreshed
		}
	}

	return response, nil
}
