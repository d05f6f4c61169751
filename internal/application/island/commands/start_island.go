package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

// StartIslandCommand starts production on one island, collecting its pending
// output first
type StartIslandCommand struct {
	IslandID int64
}

// IsOperation marks the command as mutating for the busy guard
func (StartIslandCommand) IsOperation() bool { return true }

// StartIslandResponse reports what happened
type StartIslandResponse struct {
	Confirmed bool
	Collected float64 // output collected before starting, 0 when none
	Started   bool
	Islands   []*island.Island // refreshed snapshot, nil when the refetch failed
}

// StartIslandHandler handles single-island start
type StartIslandHandler struct {
	deps     services.WorkflowDeps
	executor *services.OperationExecutor
}

// NewStartIslandHandler creates a new start island handler
func NewStartIslandHandler(deps services.WorkflowDeps) *StartIslandHandler {
	deps = deps.WithDefaults()
	return &StartIslandHandler{
		deps:     deps,
		executor: services.NewOperationExecutor(deps.Client),
	}
}

// Handle executes the start island command
func (h *StartIslandHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*StartIslandCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartIslandCommand")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	target, err := h.executor.FetchTarget(ctx, token, cmd.IslandID)
	if err != nil {
		return nil, err
	}

	if !h.deps.Prompter.Confirm(ctx, services.StartConfirmationMessage(target)) {
		return &StartIslandResponse{}, nil
	}

	h.deps.Busy.Set()
	defer h.deps.Busy.Clear()

	response := &StartIslandResponse{Confirmed: true}
	pacer := batch.NewPacer(h.deps.Clock, h.deps.PacingDelay)

	if target.HasOutput() {
		pacer.Wait()
		if h.executor.ExecuteLogged(ctx, token, target, island.Collect()) {
			response.Collected = target.ProduceNum
			h.deps.Notifier.Notify(fmt.Sprintf("Collected %.2f from %s", target.ProduceNum, target.Title), interaction.KindSuccess)
		} else {
			h.deps.Notifier.Notify(fmt.Sprintf("Collect failed for %s", target.Title), interaction.KindFail)
		}
	}

	pacer.Wait()
	if h.executor.ExecuteLogged(ctx, token, target, island.Start(true)) {
		response.Started = true
		h.deps.Notifier.Notify(fmt.Sprintf("%s started", target.Title), interaction.KindSuccess)
	} else {
		h.deps.Notifier.Notify(fmt.Sprintf("Start failed for %s", target.Title), interaction.KindFail)
	}

	response.Islands = h.executor.Refresh(ctx, token)
	return response, nil
}
