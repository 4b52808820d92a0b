package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/steps"
)

// Gate applies required/kind checks to the fields of the steps in scope.
type Gate struct {
	registry *steps.Registry
}

// NewGate constructs a gate bound to the registry's step definitions.
func NewGate(registry *steps.Registry) *Gate {
	return &Gate{registry: registry}
}

// Validate checks every field of every step in scope against the values held
// in state and returns all failures; it never stops at the first one. Values
// for fields the schema does not declare are ignored. The error return is
// reserved for scopes naming unknown steps.
func (g *Gate) Validate(state *State, scope Scope) (ValidationErrors, error) {
	var errs ValidationErrors
	for _, id := range scope {
		def, err := g.registry.DefinitionFor(id)
		if err != nil {
			return nil, err
		}
		values := state.Values[id]
		for _, field := range def.Fields {
			if fe, failed := CheckField(id, field, values); failed {
				errs = append(errs, fe)
			}
		}
	}
	return errs, nil
}

// CheckField validates a single field value. Optional fields left blank skip
// the kind checks.
func CheckField(step schema.StepID, field schema.FieldDefinition, values Values) (FieldError, bool) {
	fail := func(message string) (FieldError, bool) {
		return FieldError{Step: step, Field: field.Name, Message: message}, true
	}

	if values.Blank(field.Name) {
		if field.Required {
			return fail(fmt.Sprintf("%s field is required.", field.DisplayLabel()))
		}
		return FieldError{}, false
	}

	value := strings.TrimSpace(values[field.Name])
	switch field.Kind {
	case schema.FieldKindEnum:
		if !field.HasOption(value) {
			return fail(fmt.Sprintf("%s: the selected value is not a valid choice.", field.DisplayLabel()))
		}
	case schema.FieldKindDate:
		if _, err := time.Parse(schema.DateLayout, value); err != nil {
			return fail(fmt.Sprintf("%s must be a valid date (YYYY-MM-DD).", field.DisplayLabel()))
		}
	}
	return FieldError{}, false
}
