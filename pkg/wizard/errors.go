package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

var (
	// ErrUnknownIntent is returned by ParseIntent for unrecognised input.
	ErrUnknownIntent = errors.New("wizard: unknown intent")
	// ErrNilState is returned when Navigate receives a nil state.
	ErrNilState = errors.New("wizard: state is nil")
)

// FieldError is a recoverable, user-facing validation failure for one field.
type FieldError struct {
	Step    schema.StepID `json:"step"`
	Field   string        `json:"field"`
	Message string        `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Step, e.Field, e.Message)
}

// ValidationErrors collects every field error produced for one transition.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "wizard: no validation errors"
	}
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Error())
	}
	return "wizard: validation failed: " + strings.Join(parts, "; ")
}

// ByField groups messages by field name, preserving order.
func (v ValidationErrors) ByField() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string, len(v))
	for _, fe := range v {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// ProtocolError reports an intent that is not available at the active step,
// e.g. submit before the last step. It points at a malformed client round
// trip; the state is never changed when it is returned.
type ProtocolError struct {
	Intent Intent
	Step   int
	Total  int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wizard: intent %q not available at step %d of %d", e.Intent, e.Step, e.Total)
}
