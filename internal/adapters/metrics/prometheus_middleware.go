package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/eartask-go/internal/application/mediator"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// Outcome labels for command metrics
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusRefused = "refused"
)

// PrometheusMiddleware records duration and outcome of every request that
// passes through the mediator. Requests refused because another workflow is
// running are counted as "refused" rather than "error".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordCommandExecution(mediator.RequestName(request), time.Since(start).Seconds(), outcomeOf(err))
		return response, err
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, shared.ErrOperationInProgress):
		return StatusRefused
	default:
		return StatusError
	}
}
