package schema

import (
	"errors"
	"fmt"
	"strings"
)

// StepID identifies a wizard step.
type StepID string

const (
	StepOne StepID = "step1"
	StepTwo StepID = "step2"
)

func (id StepID) String() string {
	return string(id)
}

// FieldKind is the simplified enum for the inputs a step can declare.
type FieldKind string

const (
	FieldKindText FieldKind = "text"
	FieldKindEnum FieldKind = "enum"
	FieldKindDate FieldKind = "date"
)

// DateLayout is the calendar date format date fields must parse with.
const DateLayout = "2006-01-02"

var (
	// ErrFieldNameRequired is returned when a field definition has no name.
	ErrFieldNameRequired = errors.New("schema: field name is required")
	// ErrEnumOptionsRequired is returned for enum fields without options.
	ErrEnumOptionsRequired = errors.New("schema: enum field requires options")
	// ErrStepIDRequired is returned when a step definition has no id.
	ErrStepIDRequired = errors.New("schema: step id is required")
)

// Valid reports whether the kind is one of the known field kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindEnum, FieldKindDate:
		return true
	default:
		return false
	}
}

// FieldDefinition models an individual input inside a step. Struct fields are
// annotated so step documents can be decoded straight into them.
type FieldDefinition struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     FieldKind `json:"kind" yaml:"kind"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	Default  string    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Validate checks the definition invariants: a name, a known kind, and a
// non-empty option set for enum fields.
func (f FieldDefinition) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrFieldNameRequired
	}
	if !f.Kind.Valid() {
		return fmt.Errorf("schema: field %q has unknown kind %q", f.Name, f.Kind)
	}
	if f.Kind == FieldKindEnum && len(f.Options) == 0 {
		return fmt.Errorf("%w: %q", ErrEnumOptionsRequired, f.Name)
	}
	return nil
}

// DisplayLabel returns the label, falling back to the field name.
func (f FieldDefinition) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Name
}

// HasOption reports whether value is one of the enum options.
func (f FieldDefinition) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// StepDefinition is one page of the wizard with its ordered fields.
type StepDefinition struct {
	ID     StepID            `json:"id" yaml:"id"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// Validate checks the step id, every field, and that field names are unique.
func (s StepDefinition) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return ErrStepIDRequired
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, field := range s.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("schema: step %q: %w", s.ID, err)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("schema: step %q declares field %q twice", s.ID, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// Field looks up a field definition by name.
func (s StepDefinition) Field(name string) (FieldDefinition, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDefinition{}, false
}

// FieldNames returns the declared field names in order.
func (s StepDefinition) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Clone returns a copy that shares no slices with the receiver.
func (s StepDefinition) Clone() StepDefinition {
	out := StepDefinition{ID: s.ID, Title: s.Title}
	if len(s.Fields) > 0 {
		out.Fields = make([]FieldDefinition, len(s.Fields))
		for i, field := range s.Fields {
			field.Options = append([]string(nil), field.Options...)
			out.Fields[i] = field
		}
	}
	return out
}
