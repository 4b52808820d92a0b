package steps

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

var (
	// ErrEmptyRegistry is returned when a registry is built without steps.
	ErrEmptyRegistry = errors.New("steps: at least one step is required")
	// ErrDuplicateStep is returned when two definitions share an id.
	ErrDuplicateStep = errors.New("steps: duplicate step id")
)

// UnknownStepError reports a lookup for a step the registry does not hold.
// It signals a programming error in the caller, not bad user input.
type UnknownStepError struct {
	ID       schema.StepID
	Position int
}

func (e *UnknownStepError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("steps: unknown step %q", e.ID)
	}
	return fmt.Sprintf("steps: step position %d out of range", e.Position)
}
