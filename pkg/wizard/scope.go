package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/steps"
)

// Scope is the ordered set of steps whose fields must validate for an intent.
type Scope []schema.StepID

// Includes reports whether id is in scope.
func (s Scope) Includes(id schema.StepID) bool {
	for _, candidate := range s {
		if candidate == id {
			return true
		}
	}
	return false
}

// ScopeFor computes the validation scope for intent issued at position:
// next checks only the active step, previous checks nothing, and submit
// re-validates every step up to and including the active (last) one.
func ScopeFor(registry *steps.Registry, intent Intent, position int) (Scope, error) {
	switch intent {
	case IntentNext:
		id, err := registry.IDAt(position)
		if err != nil {
			return nil, err
		}
		return Scope{id}, nil
	case IntentPrevious:
		return Scope{}, nil
	case IntentSubmit:
		scope := make(Scope, 0, position)
		for i := 1; i <= position; i++ {
			id, err := registry.IDAt(i)
			if err != nil {
				return nil, err
			}
			scope = append(scope, id)
		}
		return scope, nil
	default:
		return nil, ErrUnknownIntent
	}
}
