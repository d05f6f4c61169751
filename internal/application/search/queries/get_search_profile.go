package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/domain/search"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// GetSearchProfileQuery fetches the search quota, output and workers
type GetSearchProfileQuery struct{}

type GetSearchProfileResponse struct {
	Profile *search.Profile
}

type GetSearchProfileHandler struct {
	client ports.GameClient
}

func NewGetSearchProfileHandler(client ports.GameClient) *GetSearchProfileHandler {
	return &GetSearchProfileHandler{client: client}
}

func (h *GetSearchProfileHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetSearchProfileQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSearchProfileQuery")
	}

	token, err := common.SessionTokenFromContext(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.client.GetSearchProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get search profile: %w", err)
	}

	return &GetSearchProfileResponse{Profile: profile}, nil
}
