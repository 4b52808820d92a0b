package view

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var defaultButtonLabels = map[wizard.Intent]string{
	wizard.IntentPrevious: "Check your personal information",
	wizard.IntentNext:     "Complete your location information",
	wizard.IntentSubmit:   "Create your profile",
}

type config struct {
	labels map[wizard.Intent]string
}

// Option customises a Dispatcher.
type Option func(*config)

// WithButtonLabel overrides the label shown for intent. Blank labels are
// ignored.
func WithButtonLabel(intent wizard.Intent, label string) Option {
	return func(cfg *config) {
		if label = strings.TrimSpace(label); label != "" {
			cfg.labels[intent] = label
		}
	}
}

// Dispatcher builds Descriptions from wizard state.
type Dispatcher struct {
	registry *steps.Registry
	labels   map[wizard.Intent]string
}

// NewDispatcher constructs a dispatcher for the given registry.
func NewDispatcher(registry *steps.Registry, options ...Option) *Dispatcher {
	cfg := config{labels: make(map[wizard.Intent]string, len(defaultButtonLabels))}
	for intent, label := range defaultButtonLabels {
		cfg.labels[intent] = label
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Dispatcher{registry: registry, labels: cfg.labels}
}

// Dispatch describes the active step of state. Fields are pre-filled from the
// stored step values, falling back to the field default. Messages list the
// field errors first, then the pending notices, which Dispatch drains.
//
// Dispatch does not modify state. The only error is an out of range step,
// which is a programming error on the caller's side.
func (d *Dispatcher) Dispatch(state wizard.State, errs wizard.ValidationErrors, notices *Notices) (Description, error) {
	id, err := d.registry.IDAt(state.Step)
	if err != nil {
		return Description{}, err
	}
	def, err := d.registry.DefinitionFor(id)
	if err != nil {
		return Description{}, err
	}

	stored := state.Values[id]
	fieldErrors := make(map[string][]string)
	for _, fe := range errs {
		if fe.Step == id {
			fieldErrors[fe.Field] = append(fieldErrors[fe.Field], fe.Message)
		}
	}

	desc := Description{
		Step:   state.Step,
		Total:  d.registry.Count(),
		StepID: id,
		Title:  def.Title,
		Fields: make([]Field, 0, len(def.Fields)),
	}

	for _, fd := range def.Fields {
		value, ok := stored.Get(fd.Name)
		if !ok {
			value = fd.Default
		}
		desc.Fields = append(desc.Fields, Field{
			Name:     fd.Name,
			Kind:     fd.Kind,
			Label:    fd.DisplayLabel(),
			Required: fd.Required,
			Options:  append([]string(nil), fd.Options...),
			Value:    value,
			Errors:   fieldErrors[fd.Name],
		})
	}

	for _, intent := range wizard.AvailableIntents(state.Step, desc.Total) {
		desc.Buttons = append(desc.Buttons, Button{
			Intent:  intent,
			Label:   d.label(intent),
			Primary: intent != wizard.IntentPrevious,
		})
	}

	for _, fe := range errs {
		desc.Messages = append(desc.Messages, Message{
			Level: LevelError,
			Text:  fe.Message,
			Step:  fe.Step,
			Field: fe.Field,
		})
	}
	for _, notice := range notices.Drain() {
		desc.Messages = append(desc.Messages, Message{Level: notice.Level, Text: notice.Text})
	}
	desc.MessagesCleared = len(desc.Messages) == 0

	return desc, nil
}

func (d *Dispatcher) label(intent wizard.Intent) string {
	if label, ok := d.labels[intent]; ok {
		return label
	}
	return strings.ToUpper(intent.String()[:1]) + intent.String()[1:]
}
