package steps

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

const (
	stepExtensionKey  = "x-wizard-step"
	orderExtensionKey = "x-wizard-order"
	stepsExtensionKey = "x-wizard-steps"
	labelExtensionKey = "x-wizard-label"
)

// FromOpenAPI builds a registry from the named component schema of an OpenAPI
// 3 document. Each property is assigned to a step through the `x-wizard-step`
// extension and sorted by `x-wizard-order` (ties fall back to the property
// name). The schema-level `x-wizard-steps` extension lists the step ids in
// wizard order, optionally as objects carrying a title:
//
//	x-wizard-steps:
//	  - {id: step1, title: Personal information}
//	  - step2
//
// When `x-wizard-steps` is absent, steps are ordered by first appearance in
// the sorted property list.
func FromOpenAPI(ctx context.Context, raw []byte, schemaName string) (*Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("steps: openapi document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("steps: load openapi document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("steps: validate openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("steps: openapi document has no components")
	}

	ref := doc.Components.Schemas[schemaName]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("steps: schema %q not found", schemaName)
	}
	return registryFromSchema(ref.Value)
}

type propertyEntry struct {
	name  string
	step  schema.StepID
	order float64
	field schema.FieldDefinition
}

func registryFromSchema(src *openapi3.Schema) (*Registry, error) {
	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	entries := make([]propertyEntry, 0, len(src.Properties))
	for name, prop := range src.Properties {
		if prop == nil || prop.Value == nil {
			continue
		}
		stepID, ok := extensionString(prop.Value.Extensions, stepExtensionKey)
		if !ok {
			// Properties without a step hint are not collected by the wizard.
			continue
		}
		_, isRequired := required[name]
		entries = append(entries, propertyEntry{
			name:  name,
			step:  schema.StepID(stepID),
			order: extensionNumber(prop.Value.Extensions, orderExtensionKey),
			field: convertProperty(name, prop.Value, isRequired),
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("steps: schema declares no properties with x-wizard-step")
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].order != entries[j].order {
			return entries[i].order < entries[j].order
		}
		return entries[i].name < entries[j].name
	})

	order, titles := stepOrder(src.Extensions)
	byStep := make(map[schema.StepID][]schema.FieldDefinition)
	for _, entry := range entries {
		if _, known := byStep[entry.step]; !known && !containsStep(order, entry.step) {
			order = append(order, entry.step)
		}
		byStep[entry.step] = append(byStep[entry.step], entry.field)
	}

	defs := make([]schema.StepDefinition, 0, len(order))
	for _, id := range order {
		fields, ok := byStep[id]
		if !ok {
			return nil, fmt.Errorf("steps: step %q listed in %s has no properties", id, stepsExtensionKey)
		}
		defs = append(defs, schema.StepDefinition{ID: id, Title: titles[id], Fields: fields})
	}
	return New(defs...)
}

func convertProperty(name string, src *openapi3.Schema, required bool) schema.FieldDefinition {
	field := schema.FieldDefinition{
		Name:     name,
		Kind:     schema.FieldKindText,
		Required: required,
		Label:    strings.TrimSpace(src.Title),
	}
	if label, ok := extensionString(src.Extensions, labelExtensionKey); ok {
		field.Label = label
	}
	if value, ok := src.Default.(string); ok {
		field.Default = value
	}

	switch {
	case len(src.Enum) > 0:
		field.Kind = schema.FieldKindEnum
		for _, option := range src.Enum {
			if value, ok := option.(string); ok && value != "" {
				field.Options = append(field.Options, value)
			}
		}
	case src.Format == "date":
		field.Kind = schema.FieldKindDate
	}
	return field
}

func stepOrder(ext map[string]any) ([]schema.StepID, map[schema.StepID]string) {
	titles := make(map[schema.StepID]string)
	raw, ok := ext[stepsExtensionKey].([]any)
	if !ok {
		return nil, titles
	}
	order := make([]schema.StepID, 0, len(raw))
	for _, item := range raw {
		switch typed := item.(type) {
		case string:
			if id := strings.TrimSpace(typed); id != "" {
				order = append(order, schema.StepID(id))
			}
		case map[string]any:
			id, _ := typed["id"].(string)
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			order = append(order, schema.StepID(id))
			if title, ok := typed["title"].(string); ok {
				titles[schema.StepID(id)] = strings.TrimSpace(title)
			}
		}
	}
	return order, titles
}

func containsStep(order []schema.StepID, id schema.StepID) bool {
	for _, candidate := range order {
		if candidate == id {
			return true
		}
	}
	return false
}

func extensionString(ext map[string]any, key string) (string, bool) {
	value, ok := ext[key].(string)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func extensionNumber(ext map[string]any, key string) float64 {
	switch value := ext[key].(type) {
	case float64:
		return value
	case int:
		return float64(value)
	default:
		return 0
	}
}
