package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/common"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
)

// GetSessionQuery returns the stored session; shared.ErrNoSession when logged out
type GetSessionQuery struct{}

type GetSessionResponse struct {
	Session *session.Session
}

type GetSessionHandler struct {
	sessionRepo session.SessionRepository
}

func NewGetSessionHandler(sessionRepo session.SessionRepository) *GetSessionHandler {
	return &GetSessionHandler{sessionRepo: sessionRepo}
}

func (h *GetSessionHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetSessionQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSessionQuery")
	}

	s, err := h.sessionRepo.Current(ctx)
	if err != nil {
		return nil, err
	}

	return &GetSessionResponse{Session: s}, nil
}
