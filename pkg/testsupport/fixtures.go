package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// LoadState reads a JSON wizard state fixture.
func LoadState(path string) (wizard.State, error) {
	if path == "" {
		return wizard.State{}, errors.New("testsupport: state path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return wizard.State{}, fmt.Errorf("testsupport: read state: %w", err)
	}
	var out wizard.State
	if err := json.Unmarshal(data, &out); err != nil {
		return wizard.State{}, fmt.Errorf("testsupport: unmarshal state: %w", err)
	}
	return out, nil
}

// MustLoadState is LoadState for tests.
func MustLoadState(t *testing.T, path string) wizard.State {
	t.Helper()

	state, err := LoadState(path)
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	return state
}

// MustLoadDescription loads a JSON golden into a view description.
func MustLoadDescription(t *testing.T, path string) view.Description {
	t.Helper()

	data := MustReadGolden(t, path)
	var out view.Description
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal description: %v", err)
	}
	return out
}

// WriteGolden writes arbitrary data as indented JSON when UPDATE_GOLDENS is
// set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an
// io.Writer and returns both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
