package view

import (
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Field is one input of the active step, ready to render.
type Field struct {
	Name     string           `json:"name"`
	Kind     schema.FieldKind `json:"kind"`
	Label    string           `json:"label"`
	Required bool             `json:"required"`
	Options  []string         `json:"options,omitempty"`
	Value    string           `json:"value"`
	Errors   []string         `json:"errors,omitempty"`
}

// Invalid reports whether the field carries validation errors.
func (f Field) Invalid() bool {
	return len(f.Errors) > 0
}

// Button is a navigation control offered at the active step.
type Button struct {
	Intent  wizard.Intent `json:"intent"`
	Label   string        `json:"label"`
	Primary bool          `json:"primary,omitempty"`
}

// Message is a displayed message. Field errors carry the step and field they
// belong to; notices leave both empty.
type Message struct {
	Level Level         `json:"level"`
	Text  string        `json:"text"`
	Step  schema.StepID `json:"step,omitempty"`
	Field string        `json:"field,omitempty"`
}

// Description is the complete, render-neutral picture of one wizard screen.
type Description struct {
	Step     int           `json:"step"`
	Total    int           `json:"total"`
	StepID   schema.StepID `json:"step_id"`
	Title    string        `json:"title"`
	Fields   []Field       `json:"fields"`
	Buttons  []Button      `json:"buttons"`
	Messages []Message     `json:"messages,omitempty"`

	// MessagesCleared tells transports to empty any previously shown message
	// region because this screen has nothing to show.
	MessagesCleared bool `json:"messages_cleared"`
	// Completed is set once a submit was accepted and the account request was
	// handed to storage.
	Completed bool `json:"completed"`
}

// Field looks up a field of the described step by name.
func (d Description) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Offers reports whether a button for intent is present.
func (d Description) Offers(intent wizard.Intent) bool {
	for _, button := range d.Buttons {
		if button.Intent == intent {
			return true
		}
	}
	return false
}

// MessagesAt filters messages by level.
func (d Description) MessagesAt(level Level) []Message {
	var out []Message
	for _, message := range d.Messages {
		if message.Level == level {
			out = append(out, message)
		}
	}
	return out
}
