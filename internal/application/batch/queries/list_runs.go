package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/domain/batch"
)

const defaultRunLimit = 20

// ListRunsQuery requests the most recent batch run summaries
type ListRunsQuery struct {
	Limit int
}

// ListRunsResponse contains run summaries, newest first
type ListRunsResponse struct {
	Runs []*batch.Run
}

// ListRunsHandler handles ListRunsQuery
type ListRunsHandler struct {
	runRepo batch.RunRepository
}

// NewListRunsHandler creates a new ListRunsHandler
func NewListRunsHandler(runRepo batch.RunRepository) *ListRunsHandler {
	return &ListRunsHandler{runRepo: runRepo}
}

// Handle executes the query
func (h *ListRunsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListRunsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListRunsQuery")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}

	runs, err := h.runRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return &ListRunsResponse{Runs: runs}, nil
}
