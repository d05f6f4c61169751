package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
)

// LogoutCommand clears the stored session
type LogoutCommand struct{}

type LogoutResponse struct{}

type LogoutHandler struct {
	sessionRepo session.SessionRepository
}

func NewLogoutHandler(sessionRepo session.SessionRepository) *LogoutHandler {
	return &LogoutHandler{sessionRepo: sessionRepo}
}

func (h *LogoutHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*LogoutCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *LogoutCommand")
	}

	if err := h.sessionRepo.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear session: %w", err)
	}

	return &LogoutResponse{}, nil
}
