package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/account"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	inputPos     int
	selectPos    int
	prompts      []string
	infoMessages []string
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newSession(store account.Store) *session.Session {
	runtime := session.NewRuntime(steps.Registration(),
		session.WithMaterializer(account.NewMaterializer(store)))
	return runtime.Start("tui")
}

func TestRun_CompletesRegistration(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "Lovelace", "1815-12-10", "London", "", ""},
		selectIdx: []int{1, 1},
	}
	store := account.NewMemoryStore()
	renderer := New(WithPromptDriver(driver))

	result, err := renderer.Run(context.Background(), newSession(store))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.Created() || result.Request.Username() != "AdaLovelace" {
		t.Fatalf("unexpected result %+v", result)
	}

	wantPrompts := []string{
		"First name *", "Last name *", "Gender *", "Birthday *",
		"City *", "Phone number", "Address", "Continue with",
	}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	last := driver.infoMessages[len(driver.infoMessages)-1]
	if last != "[ok] Your profile has been created." {
		t.Fatalf("unexpected final message %q", last)
	}
	record, _ := store.Lookup("AdaLovelace")
	if record.Fields["gender"] != "female" {
		t.Fatalf("gender not captured: %+v", record)
	}
}

func TestRun_ReportsValidationErrors(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Ada", "Lovelace", "1815-12-10",
			"", "", "",
			"London", "", "",
		},
		selectIdx: []int{1, 1, 1},
	}
	renderer := New(WithPromptDriver(driver))

	if _, err := renderer.Run(context.Background(), newSession(account.NewMemoryStore())); err != nil {
		t.Fatalf("run: %v", err)
	}
	found := false
	for _, msg := range driver.infoMessages {
		if msg == "[x] City field is required." {
			found = true
		}
	}
	if !found {
		t.Fatalf("city error not shown: %v", driver.infoMessages)
	}
}

func TestRun_PropagatesDriverErrors(t *testing.T) {
	renderer := New(WithPromptDriver(&stubDriver{}))
	if _, err := renderer.Run(context.Background(), newSession(account.NewMemoryStore())); err == nil {
		t.Fatalf("expected error from exhausted driver")
	}
}

func TestRun_MaxRounds(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", ""},
		selectIdx: []int{0},
	}
	renderer := New(WithPromptDriver(driver), WithMaxRounds(1))
	_, err := renderer.Run(context.Background(), newSession(account.NewMemoryStore()))
	if err == nil || !strings.Contains(err.Error(), "gave up") {
		t.Fatalf("expected max rounds error, got %v", err)
	}
}

func TestRender_Transcript(t *testing.T) {
	renderer := New(WithPromptDriver(&stubDriver{}))
	notices := &view.Notices{}
	notices.Warning("check your data")
	desc, err := view.NewDispatcher(steps.Registration()).Dispatch(*wizard.NewState(), nil, notices)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	out, err := renderer.Render(context.Background(), desc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"== Personal information (1/2)",
		"[!] check your data",
		"  First name *: ",
		"  Last name *: ",
		"  Gender *: male",
		"  Birthday *: ",
		"  [next] Complete your location information",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
	}
}
