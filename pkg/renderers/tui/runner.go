package tui

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/account"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Run walks s through the wizard until a submit is accepted and returns the
// account creation result. Each round prints the screen's messages, prompts
// for every field of the active step and asks which action to take.
func (r *Renderer) Run(ctx context.Context, s *session.Session) (account.Result, error) {
	desc, err := s.View()
	if err != nil {
		return account.Result{}, err
	}

	for round := 1; r.maxRounds == 0 || round <= r.maxRounds; round++ {
		if err := r.show(ctx, desc); err != nil {
			return account.Result{}, err
		}

		values, err := r.collect(ctx, desc)
		if err != nil {
			return account.Result{}, err
		}
		intent, err := r.choose(ctx, desc)
		if err != nil {
			return account.Result{}, err
		}

		next, err := s.Handle(ctx, intent, values)
		if err != nil && !wizard.IsProtocolError(err) {
			return account.Result{}, err
		}
		if err != nil {
			r.logger.Warn("tui: action unavailable", zap.String("intent", intent.String()), zap.Error(err))
		}
		desc = next

		if desc.Completed {
			if err := r.show(ctx, view.Description{Messages: desc.Messages}); err != nil {
				return account.Result{}, err
			}
			result, _ := s.LastResult()
			return result, nil
		}
	}
	return account.Result{}, fmt.Errorf("tui: gave up after %d rounds", r.maxRounds)
}

func (r *Renderer) show(ctx context.Context, desc view.Description) error {
	if desc.Title != "" {
		if err := r.driver.Info(ctx, r.title(desc)); err != nil {
			return err
		}
	}
	for _, line := range r.messageLines(desc.Messages) {
		if err := r.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) collect(ctx context.Context, desc view.Description) (wizard.Values, error) {
	values := make(wizard.Values, len(desc.Fields))
	for _, field := range desc.Fields {
		message := field.Label
		if field.Required {
			message += " *"
		}
		help := ""
		if len(field.Errors) > 0 {
			help = field.Errors[0]
		}

		switch field.Kind {
		case schema.FieldKindEnum:
			idx, err := r.driver.Select(ctx, SelectConfig{
				Message:      message,
				Options:      field.Options,
				DefaultIndex: indexOf(field.Options, field.Value),
				Help:         help,
			})
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= len(field.Options) {
				return nil, fmt.Errorf("%w: %d for %s", ErrInvalidChoice, idx, field.Name)
			}
			values[field.Name] = field.Options[idx]
		default:
			if field.Kind == schema.FieldKindDate && help == "" {
				help = "Format: YYYY-MM-DD"
			}
			value, err := r.driver.Input(ctx, InputConfig{
				Message: message,
				Default: field.Value,
				Help:    help,
			})
			if err != nil {
				return nil, err
			}
			values[field.Name] = value
		}
	}
	return values, nil
}

func (r *Renderer) choose(ctx context.Context, desc view.Description) (wizard.Intent, error) {
	if len(desc.Buttons) == 1 {
		return desc.Buttons[0].Intent, nil
	}
	labels := make([]string, 0, len(desc.Buttons))
	defaultIdx := 0
	for i, button := range desc.Buttons {
		labels = append(labels, button.Label)
		if button.Primary {
			defaultIdx = i
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Continue with",
		Options:      labels,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(desc.Buttons) {
		return "", fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}
	return desc.Buttons[idx].Intent, nil
}
