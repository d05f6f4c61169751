package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/eartask-go/internal/adapters/api"
	"github.com/andrescamacho/eartask-go/internal/adapters/metrics"
	"github.com/andrescamacho/eartask-go/internal/adapters/persistence"
	"github.com/andrescamacho/eartask-go/internal/application/auth"
	"github.com/andrescamacho/eartask-go/internal/application/batch"
	"github.com/andrescamacho/eartask-go/internal/application/interaction"
	"github.com/andrescamacho/eartask-go/internal/application/island/services"
	"github.com/andrescamacho/eartask-go/internal/application/logging"
	"github.com/andrescamacho/eartask-go/internal/application/mediator"
	"github.com/andrescamacho/eartask-go/internal/application/setup"
	domainBatch "github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/internal/domain/shared"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/config"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/database"
	"github.com/andrescamacho/eartask-go/internal/infrastructure/ports"
)

// ContainerOptions controls how a Container is assembled. Config, Client, DB
// and Clock replace the configured collaborators when set.
type ContainerOptions struct {
	ConfigPath string
	AssumeYes  bool
	Verbose    bool
	In         io.Reader
	Out        io.Writer

	Config   *config.Config
	Client   ports.GameClient
	DB       *gorm.DB
	Clock    shared.Clock
	PrefsDir string
}

// Container wires one CLI invocation: config, logger, database, game client,
// console collaborators and the configured mediator
type Container struct {
	Config   *config.Config
	Mediator mediator.Mediator
	Logger   logging.OperationLogger
	Prefs    *config.UserConfigHandler
	Prompter *ConsolePrompter
	Clock    shared.Clock
	Out      io.Writer

	db            *gorm.DB
	ownsDB        bool
	logFile       *os.File
	metricsServer *metrics.Server
}

// NewContainer assembles every dependency of a command
func NewContainer(opts ContainerOptions) (*Container, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	c := &Container{
		Config: cfg,
		Clock:  opts.Clock,
		Out:    opts.Out,
	}

	if err := c.initLogger(opts.Verbose); err != nil {
		return nil, err
	}

	if opts.PrefsDir == "" {
		opts.PrefsDir = config.DataDir()
	}
	prefs, err := config.NewUserConfigHandlerAt(opts.PrefsDir)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Prefs = prefs

	if err := c.initDatabase(opts.DB); err != nil {
		c.Close()
		return nil, err
	}

	collectors, err := c.initMetrics()
	if err != nil {
		c.Close()
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = newAPIClient(cfg, opts.Clock, collectors)
	}

	c.Prompter = NewConsolePrompter(opts.In, opts.Out)
	var prompter interaction.Prompter = c.Prompter
	if opts.AssumeYes || c.assumeYesPreference() {
		prompter = interaction.AutoConfirm{}
	}

	progress := NewProgressLine(opts.Out, "Searching")
	notifier := NewConsoleNotifier(opts.Out, progress)

	runnerOpts := []batch.RunnerOption{batch.WithObserver(progress.Update)}
	if collectors.Batch != nil {
		runnerOpts = append(runnerOpts, batch.WithRecorder(collectors.Batch))
	}
	runner := batch.NewRunner(batch.RunnerConfig{
		Kind:                   domainBatch.KindSearch,
		Label:                  "Search",
		PacingDelay:            cfg.Batch.PacingDelay,
		MaxConsecutiveFailures: cfg.Batch.MaxConsecutiveFailures,
	}, opts.Clock, notifier, runnerOpts...)

	sessionRepo := persistence.NewGormSessionRepository(c.db)
	registry := setup.NewHandlerRegistry(
		client,
		sessionRepo,
		persistence.NewGormRunRepository(c.db),
		services.WorkflowDeps{
			Prompter:    prompter,
			Notifier:    notifier,
			Clock:       opts.Clock,
			Busy:        &batch.BusyFlag{},
			PacingDelay: cfg.Batch.PacingDelay,
		},
		runner,
		setup.IslandSettings{
			DefaultSupplement: cfg.Batch.DefaultSupplement,
			ResourceCap:       cfg.Batch.ResourceCap,
		},
	)

	m, err := registry.CreateConfiguredMediator(
		metrics.PrometheusMiddleware(collectors.Command),
		auth.SessionMiddleware(sessionRepo),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	c.Mediator = m

	return c, nil
}

// Context returns ctx carrying the container's logger
func (c *Container) Context(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, c.Logger)
}

// Close releases the database, log file and metrics listener
func (c *Container) Close() {
	if c.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = c.metricsServer.Shutdown(ctx)
		cancel()
	}
	if c.db != nil && c.ownsDB {
		_ = database.Close(c.db)
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}

func (c *Container) initLogger(verbose bool) error {
	var w io.Writer
	switch c.Config.Logging.Output {
	case "stdout":
		w = os.Stdout
	case "file":
		f, err := os.OpenFile(c.Config.Logging.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		c.logFile = f
		w = f
	default:
		w = os.Stderr
	}

	c.Logger = logging.NewSlogLogger(w, c.Config.Logging.EffectiveLevel(verbose), c.Config.Logging.Format)
	return nil
}

func (c *Container) initDatabase(db *gorm.DB) error {
	if db != nil {
		c.db = db
		return nil
	}

	db, err := database.NewConnection(&c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	c.db = db
	c.ownsDB = true
	return nil
}

func (c *Container) initMetrics() (*metrics.Collectors, error) {
	if !c.Config.Metrics.Enabled {
		return &metrics.Collectors{}, nil
	}

	metrics.InitRegistry()
	collectors, err := metrics.NewCollectors()
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	server, err := metrics.StartServer(c.Config.Metrics.Address(), c.Config.Metrics.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to start metrics server: %w", err)
	}
	c.metricsServer = server

	return collectors, nil
}

func (c *Container) assumeYesPreference() bool {
	prefs, err := c.Prefs.Load()
	if err != nil {
		return false
	}
	return prefs.AssumeYes
}

func newAPIClient(cfg *config.Config, clock shared.Clock, collectors *metrics.Collectors) *api.Client {
	opts := []api.ClientOption{api.WithClock(clock)}
	if collectors.API != nil {
		opts = append(opts, api.WithRecorder(collectors.API))
	}

	return api.NewClient(api.ClientConfig{
		BaseURL:           cfg.API.BaseURL,
		SignKey:           cfg.API.SignKey,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RateLimit.Requests,
		Burst:             cfg.API.RateLimit.Burst,
	}, opts...)
}
