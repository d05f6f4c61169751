package batch

import (
	"context"

	"github.com/andrescamacho/eartask-go/internal/application/mediator"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// OperationRequest marks commands that start a remote workflow
type OperationRequest interface {
	IsOperation() bool
}

// BusyGuardMiddleware refuses operation commands while any indicator reports a
// running workflow. Queries always pass. This is a check, not a queue: a
// refused command is dropped with shared.ErrOperationInProgress.
func BusyGuardMiddleware(indicators ...Indicator) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if op, ok := request.(OperationRequest); ok && op.IsOperation() {
			for _, indicator := range indicators {
				if indicator != nil && indicator.Running() {
					return nil, shared.ErrOperationInProgress
				}
			}
		}
		return next(ctx, request)
	}
}
