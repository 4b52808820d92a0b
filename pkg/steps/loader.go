package steps

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

type documentFile struct {
	Steps []schema.StepDefinition `json:"steps" yaml:"steps"`
}

// LoadFS reads a JSON or YAML step document from fsys and builds a registry.
func LoadFS(fsys fs.FS, name string) (*Registry, error) {
	if fsys == nil {
		return nil, fmt.Errorf("steps: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("steps: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse builds a registry from raw JSON or YAML. source is only used in
// error messages.
func Parse(data []byte, source string) (*Registry, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	for i := range doc.Steps {
		normaliseStep(&doc.Steps[i])
	}
	registry, err := New(doc.Steps...)
	if err != nil {
		return nil, fmt.Errorf("steps: %s: %w", source, err)
	}
	return registry, nil
}

// Marshal renders the registry as a YAML step document that Parse accepts.
func Marshal(r *Registry) ([]byte, error) {
	out, err := yaml.Marshal(documentFile{Steps: r.Definitions()})
	if err != nil {
		return nil, fmt.Errorf("steps: marshal: %w", err)
	}
	return out, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("steps: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("steps: parse %s: invalid JSON or YAML", source)
}

func normaliseStep(step *schema.StepDefinition) {
	step.ID = schema.StepID(strings.TrimSpace(string(step.ID)))
	step.Title = strings.TrimSpace(step.Title)
	for i := range step.Fields {
		field := &step.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		field.Kind = schema.FieldKind(strings.ToLower(strings.TrimSpace(string(field.Kind))))
		if field.Kind == "" {
			field.Kind = schema.FieldKindText
		}
	}
}
