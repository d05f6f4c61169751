package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/island"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// WorkflowDeps bundles the collaborators every island workflow needs
type WorkflowDeps struct {
	Client      ports.GameClient
	Prompter    interaction.Prompter
	Notifier    interaction.Notifier
	Clock       shared.Clock
	Busy        *batch.BusyFlag
	Runs        domainBatch.RunRepository
	PacingDelay time.Duration
}

// WithDefaults fills optional collaborators
func (d WorkflowDeps) WithDefaults() WorkflowDeps {
	if d.Clock == nil {
		d.Clock = shared.NewRealClock()
	}
	if d.Busy == nil {
		d.Busy = &batch.BusyFlag{}
	}
	if d.Notifier == nil {
		d.Notifier = interaction.NotifierFunc(func(string, interaction.Kind) {})
	}
	if d.Prompter == nil {
		d.Prompter = interaction.AutoConfirm{}
	}
	return d
}

// OperationExecutor dispatches island operations onto the game client
type OperationExecutor struct {
	client ports.GameClient
}

// NewOperationExecutor creates a new executor
func NewOperationExecutor(client ports.GameClient) *OperationExecutor {
	return &OperationExecutor{client: client}
}

// Execute runs one operation against one island and returns the backend's
// success flag. It never retries.
func (e *OperationExecutor) Execute(ctx context.Context, token string, islandID int64, op island.Operation) (bool, error) {
	switch op.Kind {
	case island.OperationCollect:
		return e.client.CollectIsland(ctx, islandID, token)
	case island.OperationSupplement:
		if op.Amount <= 0 {
			return false, shared.NewValidationError("amount", "supplement amount must be positive")
		}
		return e.client.SupplementIsland(ctx, islandID, op.Amount, token)
	case island.OperationStart:
		return e.client.StartIsland(ctx, islandID, op.Start, token)
	default:
		return false, fmt.Errorf("unsupported island operation: %s", op)
	}
}

// ExecuteLogged runs an operation and folds an error into a failed outcome,
// logging either kind of failure. Used by loops that tolerate per-island failures.
func (e *OperationExecutor) ExecuteLogged(ctx context.Context, token string, target *island.Island, op island.Operation) bool {
	logger := common.LoggerFromContext(ctx)

	ok, err := e.Execute(ctx, token, target.ID, op)
	if err != nil {
		logger.Log("ERROR", "Island operation failed", map[string]interface{}{
			"island_id": target.ID,
			"island":    target.Title,
			"operation": op.String(),
			"error":     err.Error(),
		})
		return false
	}
	if !ok {
		logger.Log("WARNING", "Island operation rejected by backend", map[string]interface{}{
			"island_id": target.ID,
			"island":    target.Title,
			"operation": op.String(),
		})
	}
	return ok
}

// Refresh refetches the island list after a mutation. A failure is logged and
// yields nil; the mutation outcome stands regardless.
func (e *OperationExecutor) Refresh(ctx context.Context, token string) []*island.Island {
	islands, err := e.client.ListIslands(ctx, token)
	if err != nil {
		common.LoggerFromContext(ctx).Log("ERROR", "Failed to refresh island list", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return islands
}

// FetchTarget loads the island list and picks one island
func (e *OperationExecutor) FetchTarget(ctx context.Context, token string, islandID int64) (*island.Island, error) {
	islands, err := e.client.ListIslands(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list islands: %w", err)
	}

	target := island.FindByID(islands, islandID)
	if target == nil {
		return nil, shared.NewNotFoundError("island", islandID)
	}
	return target, nil
}
