package wizard

import (
	"fmt"
	"strings"
)

// Intent is the transition the user asked for.
type Intent string

const (
	IntentNext     Intent = "next"
	IntentPrevious Intent = "previous"
	IntentSubmit   Intent = "submit"
)

func (i Intent) String() string {
	return string(i)
}

// ParseIntent maps transport input (button names, query params) to an Intent.
// Matching is case-insensitive and accepts "prev" and "back" for previous.
func ParseIntent(raw string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "next":
		return IntentNext, nil
	case "previous", "prev", "back":
		return IntentPrevious, nil
	case "submit":
		return IntentSubmit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, raw)
	}
}

// AvailableIntents lists the intents offered at step (1-based) of total steps:
// previous after the first step, next before the last, submit on the last.
func AvailableIntents(step, total int) []Intent {
	var out []Intent
	if step > 1 {
		out = append(out, IntentPrevious)
	}
	if step < total {
		out = append(out, IntentNext)
	}
	if step == total {
		out = append(out, IntentSubmit)
	}
	return out
}

// IntentAvailable reports whether intent is offered at step of total.
func IntentAvailable(intent Intent, step, total int) bool {
	for _, candidate := range AvailableIntents(step, total) {
		if candidate == intent {
			return true
		}
	}
	return false
}
