package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/view"
)

// Renderer presents wizard screens in a terminal. Render produces a plain
// text transcript of one screen; Run drives a whole session interactively.
type Renderer struct {
	driver    PromptDriver
	theme     Theme
	logger    *zap.Logger
	maxRounds int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer. Without WithPromptDriver the survey driver on
// the standard streams is used.
func New(options ...Option) *Renderer {
	r := &Renderer{
		theme:  DefaultTheme,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the screen as text: a title line, the messages, the fields
// with their current values and the available actions.
func (r *Renderer) Render(_ context.Context, desc view.Description) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, r.title(desc))
	for _, line := range r.messageLines(desc.Messages) {
		fmt.Fprintln(&buf, line)
	}
	for _, field := range desc.Fields {
		marker := ""
		if field.Required {
			marker = " *"
		}
		fmt.Fprintf(&buf, "  %s%s: %s\n", field.Label, marker, field.Value)
	}
	labels := make([]string, 0, len(desc.Buttons))
	for _, button := range desc.Buttons {
		labels = append(labels, fmt.Sprintf("[%s] %s", button.Intent, button.Label))
	}
	if len(labels) > 0 {
		fmt.Fprintln(&buf, "  "+strings.Join(labels, "  "))
	}
	return buf.Bytes(), nil
}

func (r *Renderer) title(desc view.Description) string {
	return fmt.Sprintf("%s%s (%d/%d)", r.theme.TitlePrefix, desc.Title, desc.Step, desc.Total)
}

func (r *Renderer) messageLines(messages []view.Message) []string {
	lines := make([]string, 0, len(messages))
	for _, message := range messages {
		prefix := r.theme.StatusPrefix
		switch message.Level {
		case view.LevelWarning:
			prefix = r.theme.WarningPrefix
		case view.LevelError:
			prefix = r.theme.ErrorPrefix
		}
		lines = append(lines, prefix+message.Text)
	}
	return lines
}
