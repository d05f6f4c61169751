package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/eartask-go/internal/application/logging"
	"github.com/andrescamacho/eartask-go/internal/application/mediator"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
)

// Context keys for passing authentication data through context
type authContextKey int

const (
	sessionTokenKey authContextKey = iota + 1000 // Offset from logger keys
)

// WithSessionToken injects the session token into the context
func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenKey, token)
}

// SessionTokenFromContext extracts the session token from context
// Returns shared.ErrNoSession if the token is not in the context
func SessionTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(sessionTokenKey).(string)
	if !ok || token == "" {
		return "", shared.ErrNoSession
	}
	return token, nil
}

// SessionMiddleware injects the stored session token into the context and
// clears the stored session when a handler reports the token was rejected.
// Requests without a stored session pass through untouched; handlers that need
// a token fail with shared.ErrNoSession.
func SessionMiddleware(sessionRepo session.SessionRepository) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		current, err := sessionRepo.Current(ctx)
		switch {
		case err == nil:
			ctx = WithSessionToken(ctx, current.Token)
		case errors.Is(err, shared.ErrNoSession):
		default:
			return nil, fmt.Errorf("failed to load session: %w", err)
		}

		response, err := next(ctx, request)

		if err != nil && shared.IsAuthError(err) {
			logger := logging.LoggerFromContext(ctx)
			if clearErr := sessionRepo.Clear(ctx); clearErr != nil {
				logger.Log("ERROR", "Failed to clear expired session", map[string]interface{}{
					"error": clearErr.Error(),
				})
			} else {
				logger.Log("WARNING", "Session expired, stored credentials cleared", nil)
			}
		}

		return response, err
	}
}
