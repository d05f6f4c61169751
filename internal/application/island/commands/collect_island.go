package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
)

// CollectIslandCommand collects the pending output of one island
type CollectIslandCommand struct {
	IslandID int64
}

func (CollectIslandCommand) IsOperation() bool { return true }

type CollectIslandResponse struct {
	Confirmed bool
	Collected float64
	Islands   []*island.Island
}

type CollectIslandHandler struct {
	deps     services.WorkflowDeps
	executor *services.OperationExecutor
}

func NewCollectIslandHandler(deps services.WorkflowDeps) *CollectIslandHandler {
	deps = deps.WithDefaults()
	return &CollectIslandHandler{
		deps:     deps,
		executor: services.NewOperationExecutor(deps.Client),
	}
}

func (h *CollectIslandHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CollectIslandCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CollectIslandCommand")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	target, err := h.executor.FetchTarget(ctx, token, cmd.IslandID)
	if err != nil {
		return nil, err
	}

	if !target.HasOutput() {
		h.deps.Notifier.Notify(fmt.Sprintf("Nothing to collect on %s", target.Title), interaction.KindInfo)
		return &CollectIslandResponse{}, nil
	}

	message := fmt.Sprintf("Collect %.2f output from %s?", target.ProduceNum, target.Title)
	if !h.deps.Prompter.Confirm(ctx, message) {
		return &CollectIslandResponse{}, nil
	}

	h.deps.Busy.Set()
	defer h.deps.Busy.Clear()

	response := &CollectIslandResponse{Confirmed: true}
	if h.executor.ExecuteLogged(ctx, token, target, island.Collect()) {
		response.Collected = target.ProduceNum
		h.deps.Notifier.Notify(fmt.Sprintf("Collected %.2f from %s", target.ProduceNum, target.Title), interaction.KindSuccess)
	} else {
		h.deps.Notifier.Notify(fmt.Sprintf("Collect failed for %s", target.Title), interaction.KindFail)
	}

	response.Islands = h.executor.Refresh(ctx, token)
	return response, nil
}
