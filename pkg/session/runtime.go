package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/account"
	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type config struct {
	materializer *account.Materializer
	viewOptions  []view.Option
	logger       *zap.Logger
}

// Option configures a Runtime.
type Option func(*config)

// WithMaterializer sets the account materializer used on submit. Without one
// an in-memory store is used.
func WithMaterializer(m *account.Materializer) Option {
	return func(cfg *config) {
		if m != nil {
			cfg.materializer = m
		}
	}
}

// WithViewOptions forwards options to the view dispatcher.
func WithViewOptions(options ...view.Option) Option {
	return func(cfg *config) {
		cfg.viewOptions = append(cfg.viewOptions, options...)
	}
}

// WithLogger routes session logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Runtime holds the stateless collaborators shared by every session of one
// registry.
type Runtime struct {
	registry     *steps.Registry
	controller   *wizard.Controller
	dispatcher   *view.Dispatcher
	materializer *account.Materializer
	logger       *zap.Logger
}

// NewRuntime builds the controller, dispatcher and materializer for registry.
// The materializer's username check is installed as a submit check.
func NewRuntime(registry *steps.Registry, options ...Option) *Runtime {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.materializer == nil {
		cfg.materializer = account.NewMaterializer(account.NewMemoryStore(), account.WithLogger(cfg.logger))
	}

	controllerOptions := []wizard.Option{wizard.WithLogger(cfg.logger)}
	if check := cfg.materializer.Check(); check != nil {
		controllerOptions = append(controllerOptions, wizard.WithSubmitCheck(check))
	}

	return &Runtime{
		registry:     registry,
		controller:   wizard.NewController(registry, controllerOptions...),
		dispatcher:   view.NewDispatcher(registry, cfg.viewOptions...),
		materializer: cfg.materializer,
		logger:       cfg.logger,
	}
}

// Registry returns the step registry.
func (r *Runtime) Registry() *steps.Registry {
	return r.registry
}

// Controller exposes the navigation controller.
func (r *Runtime) Controller() *wizard.Controller {
	return r.controller
}

// Start opens a fresh session with the given id.
func (r *Runtime) Start(id string) *Session {
	return &Session{
		id:      id,
		runtime: r,
		state:   wizard.NewState(),
	}
}
