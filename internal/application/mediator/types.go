package mediator

import (
	"context"
	"reflect"
	"strings"
)

// Request is a command or query sent through the mediator
type Request interface{}

// Response is whatever the handler returns; callers type-assert it
type Response interface{}

// RequestHandler handles exactly one request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc adapts a function to the handler chain
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Middleware wraps the handler chain. Returning without calling next
// short-circuits the request.
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// RequestName returns the bare type name of a request,
// e.g. "*commands.CollectAllCommand" becomes "CollectAllCommand"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
