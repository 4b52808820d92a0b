// Package widgets picks the HTML input used for each wizard field.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/view"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetSelect   = "select"
	WidgetDate     = "date"
	WidgetText     = "text"
	WidgetTextarea = "textarea"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field view.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on registered matchers. Higher
// priority wins; ties fall back to registration order. An empty registry
// never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers: enums render
// as a select, dates as a date input and everything else as a text input.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. The
// latest registration wins between equal priorities only when it is the
// first to match, so callers should pick distinct priorities.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field view.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// ResolveOr returns the resolved widget or fallback.
func (r *Registry) ResolveOr(field view.Field, fallback string) string {
	if widget, ok := r.Resolve(field); ok {
		return widget
	}
	return fallback
}

// Named matches fields by name, e.g. to render the address as a textarea:
//
//	reg.Register(widgets.WidgetTextarea, 100, widgets.Named("address"))
func Named(names ...string) Matcher {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.TrimSpace(name)] = struct{}{}
	}
	return func(field view.Field) bool {
		_, ok := set[field.Name]
		return ok
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 70, func(field view.Field) bool {
		return field.Kind == schema.FieldKindEnum && len(field.Options) > 0
	})
	r.Register(WidgetDate, 60, func(field view.Field) bool {
		return field.Kind == schema.FieldKindDate
	})
	r.Register(WidgetText, 0, func(view.Field) bool {
		return true
	})
}
