package common

// Handlers import this package for the mediator, auth and logging helpers
// they all share, instead of three separate imports.

import (
	"github.com/andrescamacho/eartask-go/internal/application/auth"
	"github.com/andrescamacho/eartask-go/internal/application/logging"
	"github.com/andrescamacho/eartask-go/internal/application/mediator"
)

// Mediator types
type (
	Request        = mediator.Request
	Response       = mediator.Response
	RequestHandler = mediator.RequestHandler
	HandlerFunc    = mediator.HandlerFunc
	Middleware     = mediator.Middleware
	Mediator       = mediator.Mediator
)

// Logging types
type OperationLogger = logging.OperationLogger

// Mediator functions
var (
	NewMediator = mediator.NewMediator
)

// Auth functions
var (
	WithSessionToken        = auth.WithSessionToken
	SessionTokenFromContext = auth.SessionTokenFromContext
	SessionMiddleware       = auth.SessionMiddleware
)

// Logging functions
var (
	WithLogger        = logging.WithLogger
	LoggerFromContext = logging.LoggerFromContext
)
