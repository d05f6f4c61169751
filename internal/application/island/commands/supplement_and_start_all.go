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

// SupplementAndStartAllCommand tops every island up to a 24h runway, then
// starts the islands that were never started
type SupplementAndStartAllCommand struct{}

func (SupplementAndStartAllCommand) IsOperation() bool { return true }

// SupplementAndStartAllResponse reports both phases
type SupplementAndStartAllResponse struct {
	Confirmed        bool
	Plan             services.SupplementStartPlan
	SupplementPhase  domainBatch.Progress
	CurrencySpent    int
	StartPhase       domainBatch.Progress
	CollectedOnStart float64
	Islands          []*island.Island
}

// SupplementAndStartAllHandler runs the two phases strictly in order:
// every supplement finishes before the first start-phase call.
type SupplementAndStartAllHandler struct {
	deps     services.WorkflowDeps
	executor *services.OperationExecutor
}

// NewSupplementAndStartAllHandler creates a new handler
func NewSupplementAndStartAllHandler(deps services.WorkflowDeps) *SupplementAndStartAllHandler {
	deps = deps.WithDefaults()
	return &SupplementAndStartAllHandler{
		deps:     deps,
		executor: services.NewOperationExecutor(deps.Client),
	}
}

// Handle executes the supplement-and-start-all command
func (h *SupplementAndStartAllHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*SupplementAndStartAllCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *SupplementAndStartAllCommand")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	islands, err := h.deps.Client.ListIslands(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list islands: %w", err)
	}

	plan := services.PlanSupplementAndStart(islands)
	response := &SupplementAndStartAllResponse{Plan: plan, Islands: islands}

	if plan.Empty() {
		h.deps.Notifier.Notify("All islands have enough resource for 24h", interaction.KindInfo)
		return response, nil
	}

	if !h.deps.Prompter.Confirm(ctx, plan.ConfirmationMessage()) {
		return response, nil
	}

	h.deps.Busy.Set()
	defer h.deps.Busy.Clear()

	response.Confirmed = true
	pacer := batch.NewPacer(h.deps.Clock, h.deps.PacingDelay)

	h.runSupplementPhase(ctx, token, pacer, plan, response)
	h.runStartPhase(ctx, token, pacer, plan, response)

	response.Islands = h.executor.Refresh(ctx, token)
	return response, nil
}

func (h *SupplementAndStartAllHandler) runSupplementPhase(ctx context.Context, token string, pacer *batch.Pacer, plan services.SupplementStartPlan, response *SupplementAndStartAllResponse) {
	if len(plan.Supplements) == 0 {
		return
	}

	startedAt := h.deps.Clock.Now()
	progress := domainBatch.Progress{Total: len(plan.Supplements)}

	for _, item := range plan.Supplements {
		pacer.Wait()
		progress.Current++
		if h.executor.ExecuteLogged(ctx, token, item.Island, island.Supplement(item.Amount)) {
			progress.SuccessCount++
			response.CurrencySpent += item.Amount
		} else {
			progress.FailCount++
		}
	}
	response.SupplementPhase = progress

	if progress.SuccessCount > 0 {
		message := fmt.Sprintf("Supplemented %d island(s) with %d currency", progress.SuccessCount, response.CurrencySpent)
		if progress.FailCount > 0 {
			message += fmt.Sprintf(", %d failed", progress.FailCount)
		}
		h.deps.Notifier.Notify(message, interaction.KindSuccess)
	} else {
		h.deps.Notifier.Notify(fmt.Sprintf("Supplement failed for all %d island(s)", progress.FailCount), interaction.KindFail)
	}

	batch.SaveRun(ctx, h.deps.Runs, batch.NewRun(domainBatch.KindSupplement, progress, false, startedAt, h.deps.Clock.Now()))
}

// runStartPhase collects pending output before each start; a failed collect
// is logged and the start is still attempted
func (h *SupplementAndStartAllHandler) runStartPhase(ctx context.Context, token string, pacer *batch.Pacer, plan services.SupplementStartPlan, response *SupplementAndStartAllResponse) {
	if len(plan.Starts) == 0 {
		return
	}

	startedAt := h.deps.Clock.Now()
	progress := domainBatch.Progress{Total: len(plan.Starts)}

	for _, target := range plan.Starts {
		if target.HasOutput() {
			pacer.Wait()
			if h.executor.ExecuteLogged(ctx, token, target, island.Collect()) {
				response.CollectedOnStart += target.ProduceNum
			}
		}

		pacer.Wait()
		progress.Current++
		if h.executor.ExecuteLogged(ctx, token, target, island.Start(true)) {
			progress.SuccessCount++
		} else {
			progress.FailCount++
		}
	}
	response.StartPhase = progress

	if progress.SuccessCount > 0 {
		message := fmt.Sprintf("Started %d island(s)", progress.SuccessCount)
		if progress.FailCount > 0 {
			message += fmt.Sprintf(", %d failed", progress.FailCount)
		}
		h.deps.Notifier.Notify(message, interaction.KindSuccess)
	} else {
		h.deps.Notifier.Notify(fmt.Sprintf("Start failed for all %d island(s)", progress.FailCount), interaction.KindFail)
	}

	batch.SaveRun(ctx, h.deps.Runs, batch.NewRun(domainBatch.KindStart, progress, false, startedAt, h.deps.Clock.Now()))
}
