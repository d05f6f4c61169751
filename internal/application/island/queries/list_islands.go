package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// ListIslandsQuery fetches the island list with derived projections
type ListIslandsQuery struct{}

// ListIslandsResponse contains the islands and their projections
type ListIslandsResponse struct {
	Views []services.IslandView
}

// ListIslandsHandler handles the list islands query
type ListIslandsHandler struct {
	client ports.GameClient
	clock  shared.Clock
}

// NewListIslandsHandler creates a new list islands handler
func NewListIslandsHandler(client ports.GameClient, clock shared.Clock) *ListIslandsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ListIslandsHandler{client: client, clock: clock}
}

// Handle executes the list islands query
func (h *ListIslandsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListIslandsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListIslandsQuery")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	islands, err := h.client.ListIslands(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list islands: %w", err)
	}

	return &ListIslandsResponse{
		Views: services.BuildViews(islands, h.clock.Now()),
	}, nil
}
