package vanilla

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/widgets"
)

func fieldData(desc view.Description, reg *widgets.Registry) []map[string]any {
	out := make([]map[string]any, 0, len(desc.Fields))
	for _, field := range desc.Fields {
		entry := map[string]any{
			"id":       fieldID(desc.StepID, field.Name),
			"name":     field.Name,
			"kind":     string(field.Kind),
			"widget":   reg.ResolveOr(field, widgets.WidgetText),
			"label":    field.Label,
			"required": field.Required,
			"value":    field.Value,
			"errors":   field.Errors,
		}
		if field.Kind == schema.FieldKindEnum || len(field.Options) > 0 {
			options := make([]map[string]any, 0, len(field.Options))
			for _, option := range field.Options {
				options = append(options, map[string]any{
					"value":    option,
					"label":    optionLabel(option),
					"selected": option == field.Value,
				})
			}
			entry["options"] = options
		}
		out = append(out, entry)
	}
	return out
}

func buttonData(buttons []view.Button) []map[string]any {
	out := make([]map[string]any, 0, len(buttons))
	for _, button := range buttons {
		out = append(out, map[string]any{
			"intent":  button.Intent.String(),
			"label":   button.Label,
			"primary": button.Primary,
		})
	}
	return out
}

func messageData(messages []view.Message) []map[string]any {
	if len(messages) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(messages))
	for _, message := range messages {
		out = append(out, map[string]any{
			"level": string(message.Level),
			"field": message.Field,
			"html":  sanitizeMessage(message.Text),
		})
	}
	return out
}

func fieldID(step schema.StepID, name string) string {
	return "edit-" + strings.ReplaceAll(step.String()+"-"+name, "_", "-")
}

func optionLabel(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}
