package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// DefaultSupplementAmount is the currency a single supplement spends when the
// caller gives no amount
const DefaultSupplementAmount = 10

// SupplementIslandCommand spends currency on one island's resource.
// Amount 0 means the handler's default amount.
type SupplementIslandCommand struct {
	IslandID int64
	Amount   int
}

func (SupplementIslandCommand) IsOperation() bool { return true }

type SupplementIslandResponse struct {
	Confirmed    bool
	Supplemented bool
	Amount       int
	Islands      []*island.Island
}

type SupplementIslandHandler struct {
	deps          services.WorkflowDeps
	executor      *services.OperationExecutor
	defaultAmount int
	resourceCap   float64
}

// NewSupplementIslandHandler creates the handler. Non-positive defaultAmount
// and resourceCap fall back to 10 and 120.
func NewSupplementIslandHandler(deps services.WorkflowDeps, defaultAmount int, resourceCap int) *SupplementIslandHandler {
	deps = deps.WithDefaults()
	if defaultAmount <= 0 {
		defaultAmount = DefaultSupplementAmount
	}
	if resourceCap <= 0 {
		resourceCap = island.DefaultResourceCap
	}
	return &SupplementIslandHandler{
		deps:          deps,
		executor:      services.NewOperationExecutor(deps.Client),
		defaultAmount: defaultAmount,
		resourceCap:   float64(resourceCap),
	}
}

func (h *SupplementIslandHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SupplementIslandCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SupplementIslandCommand")
	}

	amount := cmd.Amount
	if amount == 0 {
		amount = h.defaultAmount
	}
	if amount < 0 {
		return nil, shared.NewValidationError("amount", "supplement amount must be positive")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	target, err := h.executor.FetchTarget(ctx, token, cmd.IslandID)
	if err != nil {
		return nil, err
	}

	shortfall := island.ResourceShortfallToCap(target.Resource, h.resourceCap)
	message := fmt.Sprintf("Supplement %s with %d currency?\nResource %.2f, %.2f short of %.0f.",
		target.Title, amount, target.Resource, shortfall, h.resourceCap)
	if !h.deps.Prompter.Confirm(ctx, message) {
		return &SupplementIslandResponse{Amount: amount}, nil
	}

	h.deps.Busy.Set()
	defer h.deps.Busy.Clear()

	response := &SupplementIslandResponse{Confirmed: true, Amount: amount}
	if h.executor.ExecuteLogged(ctx, token, target, island.Supplement(amount)) {
		response.Supplemented = true
		h.deps.Notifier.Notify(fmt.Sprintf("Supplemented %s with %d currency", target.Title, amount), interaction.KindSuccess)
	} else {
		h.deps.Notifier.Notify(fmt.Sprintf("Supplement failed for %s", target.Title), interaction.KindFail)
	}

	response.Islands = h.executor.Refresh(ctx, token)
	return response, nil
}
