package steps

import (
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// Registry stores step definitions in wizard order. It is immutable after
// construction and safe for concurrent reads.
type Registry struct {
	order []schema.StepID
	steps map[schema.StepID]schema.StepDefinition
}

// New validates the supplied definitions and returns a registry preserving
// their order. Duplicate ids and invalid fields are rejected.
func New(defs ...schema.StepDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		order: make([]schema.StepID, 0, len(defs)),
		steps: make(map[schema.StepID]schema.StepDefinition, len(defs)),
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("steps: %w", err)
		}
		if _, exists := r.steps[def.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStep, def.ID)
		}
		r.order = append(r.order, def.ID)
		r.steps[def.ID] = def.Clone()
	}
	return r, nil
}

// MustNew panics on construction failure. Useful for init-time wiring.
func MustNew(defs ...schema.StepDefinition) *Registry {
	r, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefinitionFor returns a copy of the definition registered under id.
func (r *Registry) DefinitionFor(id schema.StepID) (schema.StepDefinition, error) {
	def, ok := r.steps[id]
	if !ok {
		return schema.StepDefinition{}, &UnknownStepError{ID: id}
	}
	return def.Clone(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id schema.StepID) bool {
	_, ok := r.steps[id]
	return ok
}

// IsLastStep reports whether id is the final step of the wizard.
func (r *Registry) IsLastStep(id schema.StepID) (bool, error) {
	if !r.Exists(id) {
		return false, &UnknownStepError{ID: id}
	}
	return r.order[len(r.order)-1] == id, nil
}

// Count returns the number of steps.
func (r *Registry) Count() int {
	return len(r.order)
}

// IDAt maps a 1-based wizard position to its step id.
func (r *Registry) IDAt(position int) (schema.StepID, error) {
	if position < 1 || position > len(r.order) {
		return "", &UnknownStepError{Position: position}
	}
	return r.order[position-1], nil
}

// PositionOf returns the 1-based position of id.
func (r *Registry) PositionOf(id schema.StepID) (int, error) {
	for i, candidate := range r.order {
		if candidate == id {
			return i + 1, nil
		}
	}
	return 0, &UnknownStepError{ID: id}
}

// IDs returns the step ids in wizard order.
func (r *Registry) IDs() []schema.StepID {
	return append([]schema.StepID(nil), r.order...)
}

// Definitions returns copies of every definition in wizard order.
func (r *Registry) Definitions() []schema.StepDefinition {
	out := make([]schema.StepDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.steps[id].Clone())
	}
	return out
}
