package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

// CollectAllCommand collects output from every island that has some
type CollectAllCommand struct{}

func (CollectAllCommand) IsOperation() bool { return true }

// CollectAllResponse summarises a collect-all run
type CollectAllResponse struct {
	Confirmed bool
	Progress  domainBatch.Progress
	Collected float64
	Islands   []*island.Island
}

// CollectAllHandler collects every island sequentially with pacing.
// A failed island never stops the loop.
type CollectAllHandler struct {
	deps     services.WorkflowDeps
	executor *services.OperationExecutor
}

// NewCollectAllHandler creates a new collect-all handler
func NewCollectAllHandler(deps services.WorkflowDeps) *CollectAllHandler {
	deps = deps.WithDefaults()
	return &CollectAllHandler{
		deps:     deps,
		executor: services.NewOperationExecutor(deps.Client),
	}
}

// Handle executes the collect-all command
func (h *CollectAllHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*CollectAllCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *CollectAllCommand")
	}

	logger := common.LoggerFromContext(ctx)

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	islands, err := h.deps.Client.ListIslands(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list islands: %w", err)
	}

	collectible := island.WithOutput(islands)
	if len(collectible) == 0 {
		h.deps.Notifier.Notify("No island has output to collect", interaction.KindInfo)
		return &CollectAllResponse{Islands: islands}, nil
	}

	total := island.TotalOutput(collectible)
	message := fmt.Sprintf("Collect %.2f output from %d island(s)?", total, len(collectible))
	if !h.deps.Prompter.Confirm(ctx, message) {
		return &CollectAllResponse{Islands: islands}, nil
	}

	h.deps.Busy.Set()
	defer h.deps.Busy.Clear()

	startedAt := h.deps.Clock.Now()
	pacer := batch.NewPacer(h.deps.Clock, h.deps.PacingDelay)
	response := &CollectAllResponse{
		Confirmed: true,
		Progress:  domainBatch.Progress{Total: len(collectible)},
	}

	for _, target := range collectible {
		pacer.Wait()
		response.Progress.Current++
		if h.executor.ExecuteLogged(ctx, token, target, island.Collect()) {
			response.Progress.SuccessCount++
			response.Collected += target.ProduceNum
		} else {
			response.Progress.FailCount++
		}
	}

	logger.Log("INFO", "Collect all finished", map[string]interface{}{
		"total":         response.Progress.Total,
		"success_count": response.Progress.SuccessCount,
		"fail_count":    response.Progress.FailCount,
		"collected":     response.Collected,
	})

	h.notifySummary(response)
	batch.SaveRun(ctx, h.deps.Runs, batch.NewRun(domainBatch.KindCollect, response.Progress, false, startedAt, h.deps.Clock.Now()))

	response.Islands = h.executor.Refresh(ctx, token)
	return response, nil
}

func (h *CollectAllHandler) notifySummary(response *CollectAllResponse) {
	p := response.Progress
	if p.SuccessCount == 0 {
		h.deps.Notifier.Notify(fmt.Sprintf("Collect failed for all %d island(s)", p.FailCount), interaction.KindFail)
		return
	}

	message := fmt.Sprintf("Collected %.2f from %d island(s)", response.Collected, p.SuccessCount)
	if p.FailCount > 0 {
		message += fmt.Sprintf(", %d failed", p.FailCount)
	}
	h.deps.Notifier.Notify(message, interaction.KindSuccess)
}
