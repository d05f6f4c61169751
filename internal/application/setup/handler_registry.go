package setup

import (
	"reflect"

	"github.com/andrescamacho/eartask-go/internal/application/batch"
	batchQueries "github.com/andrescamacho/eartask-go/internal/application/batch/queries"
	islandCommands "github.com/andrescamacho/eartask-go/internal/application/island/commands"
	islandQueries "github.com/andrescamacho/eartask-go/internal/application/island/queries"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/application/mediator"
	playerCommands "github.com/andrescamacho/eartask-go/internal/application/player/commands"
	playerQueries "github.com/andrescamacho/eartask-go/internal/application/player/queries"
	searchCommands "github.com/andrescamacho/eartask-go/internal/application/search/commands"
	searchQueries "github.com/andrescamacho/eartask-go/internal/application/search/queries"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/session"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// IslandSettings tunes the single-island supplement action
type IslandSettings struct {
	DefaultSupplement int
	ResourceCap       int
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	client      ports.GameClient
	sessionRepo session.SessionRepository
	runRepo     domainBatch.RunRepository
	clock       shared.Clock
	workflow    services.WorkflowDeps
	runner      *batch.Runner
	settings    IslandSettings
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// Every island command shares the workflow deps and so the same busy flag.
// A nil runner gets a default search runner.
func NewHandlerRegistry(
	client ports.GameClient,
	sessionRepo session.SessionRepository,
	runRepo domainBatch.RunRepository,
	workflow services.WorkflowDeps,
	runner *batch.Runner,
	settings IslandSettings,
) *HandlerRegistry {
	workflow.Client = client
	workflow.Runs = runRepo
	workflow = workflow.WithDefaults()
	if runner == nil {
		runner = batch.NewRunner(batch.RunnerConfig{
			Kind:        domainBatch.KindSearch,
			Label:       "Search",
			PacingDelay: workflow.PacingDelay,
		}, workflow.Clock, workflow.Notifier)
	}

	return &HandlerRegistry{
		client:      client,
		sessionRepo: sessionRepo,
		runRepo:     runRepo,
		clock:       workflow.Clock,
		workflow:    workflow,
		runner:      runner,
		settings:    settings,
	}
}

// BusyIndicators returns everything the busy guard must consult
func (r *HandlerRegistry) BusyIndicators() []batch.Indicator {
	return []batch.Indicator{r.workflow.Busy, r.runner}
}

// RegisterSessionHandlers registers login, logout and whoami
func (r *HandlerRegistry) RegisterSessionHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&playerCommands.LoginCommand{}),
		playerCommands.NewLoginHandler(r.client, r.sessionRepo, r.clock),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&playerCommands.LogoutCommand{}),
		playerCommands.NewLogoutHandler(r.sessionRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&playerQueries.GetSessionQuery{}),
		playerQueries.NewGetSessionHandler(r.sessionRepo),
	)
}

// RegisterIslandHandlers registers the island list and every island workflow
//
// This method registers:
//   - ListIslandsQuery → ListIslandsHandler
//   - StartIslandCommand, CollectIslandCommand, SupplementIslandCommand (single island)
//   - CollectAllCommand, SupplementAndStartAllCommand (batch)
func (r *HandlerRegistry) RegisterIslandHandlers(m mediator.Mediator) error {
	handlers := []struct {
		request interface{}
		handler mediator.RequestHandler
	}{
		{&islandQueries.ListIslandsQuery{}, islandQueries.NewListIslandsHandler(r.client, r.clock)},
		{&islandCommands.StartIslandCommand{}, islandCommands.NewStartIslandHandler(r.workflow)},
		{&islandCommands.CollectIslandCommand{}, islandCommands.NewCollectIslandHandler(r.workflow)},
		{&islandCommands.SupplementIslandCommand{}, islandCommands.NewSupplementIslandHandler(
			r.workflow, r.settings.DefaultSupplement, r.settings.ResourceCap,
		)},
		{&islandCommands.CollectAllCommand{}, islandCommands.NewCollectAllHandler(r.workflow)},
		{&islandCommands.SupplementAndStartAllCommand{}, islandCommands.NewSupplementAndStartAllHandler(r.workflow)},
	}

	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}

	return nil
}

// RegisterSearchHandlers registers the search profile query and the batch search
func (r *HandlerRegistry) RegisterSearchHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&searchQueries.GetSearchProfileQuery{}),
		searchQueries.NewGetSearchProfileHandler(r.client),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&searchCommands.RunBatchSearchCommand{}),
		searchCommands.NewRunBatchSearchHandler(r.client, r.runner, r.workflow.Notifier, r.runRepo, r.clock),
	)
}

// RegisterHistoryHandlers registers the run history query
func (r *HandlerRegistry) RegisterHistoryHandlers(m mediator.Mediator) error {
	return m.Register(
		reflect.TypeOf(&batchQueries.ListRunsQuery{}),
		batchQueries.NewListRunsHandler(r.runRepo),
	)
}

// CreateConfiguredMediator creates a mediator with every handler registered and
// the given middlewares installed, outermost first. The busy guard is always
// installed innermost so it sees the request after authentication.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()

	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}
	m.RegisterMiddleware(batch.BusyGuardMiddleware(r.BusyIndicators()...))

	for _, register := range []func(mediator.Mediator) error{
		r.RegisterSessionHandlers,
		r.RegisterIslandHandlers,
		r.RegisterSearchHandlers,
		r.RegisterHistoryHandlers,
	} {
		if err := register(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}
