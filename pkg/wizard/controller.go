package wizard

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/steps"
)

// Check runs extra validation on the merged state of a submit. It returns
// field errors in the same shape as the Gate.
type Check func(state State) ValidationErrors

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSubmitCheck registers a check evaluated on every submit in addition to
// the schema field checks. Checks run even when field checks fail so all
// problems surface at once.
func WithSubmitCheck(check Check) Option {
	return func(c *Controller) {
		if check != nil {
			c.submitChecks = append(c.submitChecks, check)
		}
	}
}

// Controller computes wizard transitions for a registry of steps.
type Controller struct {
	registry     *steps.Registry
	gate         *Gate
	logger       *zap.Logger
	submitChecks []Check
}

// Outcome describes the result of one Navigate call.
type Outcome struct {
	Intent    Intent
	Scope     Scope
	From      int
	To        int
	Accepted  bool
	Completed bool
	Errors    ValidationErrors
}

// NewController constructs a controller. The registry is required.
func NewController(registry *steps.Registry, options ...Option) *Controller {
	c := &Controller{
		registry: registry,
		gate:     NewGate(registry),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Registry exposes the step registry the controller navigates.
func (c *Controller) Registry() *steps.Registry {
	return c.registry
}

// Available lists the intents offered at the state's active step.
func (c *Controller) Available(state *State) []Intent {
	return AvailableIntents(state.Step, c.registry.Count())
}

// ActiveStep returns the definition of the state's active step.
func (c *Controller) ActiveStep(state *State) (schema.StepDefinition, error) {
	id, err := c.registry.IDAt(state.Step)
	if err != nil {
		return schema.StepDefinition{}, err
	}
	return c.registry.DefinitionFor(id)
}

// Navigate applies intent to state using the values submitted for the active
// step.
//
// Unavailable intents return a *ProtocolError and leave state untouched.
// Otherwise the submitted values (restricted to the fields the active step
// declares) are merged first, so typed input survives a rejection, and the
// fields in scope are validated. On success next advances, previous retreats
// and submit marks the outcome completed without moving.
func (c *Controller) Navigate(state *State, intent Intent, submitted Values) (Outcome, error) {
	if state == nil {
		return Outcome{}, ErrNilState
	}
	total := c.registry.Count()
	outcome := Outcome{Intent: intent, From: state.Step, To: state.Step}

	if !IntentAvailable(intent, state.Step, total) {
		err := &ProtocolError{Intent: intent, Step: state.Step, Total: total}
		c.logger.Warn("wizard: rejected unavailable intent",
			zap.String("intent", intent.String()),
			zap.Int("step", state.Step),
			zap.Int("total", total))
		return outcome, err
	}

	active, err := c.ActiveStep(state)
	if err != nil {
		return outcome, err
	}
	scope, err := ScopeFor(c.registry, intent, state.Step)
	if err != nil {
		return outcome, err
	}
	outcome.Scope = scope

	state.Merge(active.ID, declaredValues(active, submitted))

	errs, err := c.gate.Validate(state, scope)
	if err != nil {
		return outcome, err
	}
	if intent == IntentSubmit {
		snapshot := state.Snapshot()
		for _, check := range c.submitChecks {
			errs = append(errs, check(snapshot)...)
		}
	}

	if len(errs) > 0 {
		outcome.Errors = errs
		c.logger.Debug("wizard: transition rejected",
			zap.String("intent", intent.String()),
			zap.Int("step", state.Step),
			zap.Int("errors", len(errs)))
		return outcome, nil
	}

	switch intent {
	case IntentNext:
		state.Advance(total)
	case IntentPrevious:
		state.Retreat()
	case IntentSubmit:
		outcome.Completed = true
	}
	outcome.Accepted = true
	outcome.To = state.Step
	c.logger.Debug("wizard: transition accepted",
		zap.String("intent", intent.String()),
		zap.Int("from", outcome.From),
		zap.Int("to", outcome.To))
	return outcome, nil
}

// IsProtocolError reports whether err is (or wraps) a *ProtocolError.
func IsProtocolError(err error) bool {
	var protocolErr *ProtocolError
	return errors.As(err, &protocolErr)
}

// declaredValues keeps the submitted values of the fields def declares. Enum
// and date values are stored trimmed, in the form the gate checks them.
func declaredValues(def schema.StepDefinition, submitted Values) Values {
	out := make(Values, len(def.Fields))
	for _, field := range def.Fields {
		value, ok := submitted[field.Name]
		if !ok {
			continue
		}
		if field.Kind == schema.FieldKindEnum || field.Kind == schema.FieldKindDate {
			value = strings.TrimSpace(value)
		}
		out[field.Name] = value
	}
	return out
}
