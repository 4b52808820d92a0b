package wizard_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func validStepOne() wizard.Values {
	return wizard.Values{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"gender":     "female",
		"birthday":   "1815-12-10",
	}
}

func newController(t *testing.T, options ...wizard.Option) *wizard.Controller {
	t.Helper()
	return wizard.NewController(steps.Registration(), options...)
}

func fieldNames(errs wizard.ValidationErrors) []string {
	var out []string
	for _, fe := range errs {
		out = append(out, fe.Field)
	}
	return out
}

func TestNavigate_PreviousAtFirstStepIsNoop(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	controller := newController(t, wizard.WithLogger(zap.New(core)))
	state := wizard.NewState()
	before := state.Snapshot()

	_, err := controller.Navigate(state, wizard.IntentPrevious, validStepOne())

	var protocolErr *wizard.ProtocolError
	if !errors.As(err, &protocolErr) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if diff := cmp.Diff(before, state.Snapshot()); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected protocol error to be logged once, got %d entries", logs.Len())
	}
}

func TestNavigate_NextMissingFirstNameKeepsStepAndMergesValues(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()

	submitted := validStepOne()
	delete(submitted, "first_name")

	outcome, err := controller.Navigate(state, wizard.IntentNext, submitted)
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if outcome.Accepted {
		t.Fatalf("expected rejection")
	}
	if state.Step != 1 {
		t.Fatalf("expected step 1, got %d", state.Step)
	}
	if diff := cmp.Diff([]string{"first_name"}, fieldNames(outcome.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if outcome.Errors[0].Message != "First name field is required." {
		t.Fatalf("unexpected message %q", outcome.Errors[0].Message)
	}
	if diff := cmp.Diff(submitted, state.StepValues(schema.StepOne)); diff != "" {
		t.Fatalf("valid values not merged (-want +got):\n%s", diff)
	}
}

func TestNavigate_CollectsEveryFieldError(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()

	outcome, err := controller.Navigate(state, wizard.IntentNext, wizard.Values{
		"first_name": "  ",
		"gender":     "robot",
		"birthday":   "1815-13-45",
	})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	want := []string{"first_name", "last_name", "gender", "birthday"}
	if diff := cmp.Diff(want, fieldNames(outcome.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigate_NextThenPreviousKeepsValues(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()

	outcome, err := controller.Navigate(state, wizard.IntentNext, validStepOne())
	if err != nil || !outcome.Accepted {
		t.Fatalf("next: %+v, %v", outcome, err)
	}
	if state.Step != 2 {
		t.Fatalf("expected step 2, got %d", state.Step)
	}

	// Incomplete step 2 data must not block going back.
	outcome, err = controller.Navigate(state, wizard.IntentPrevious, wizard.Values{"phone_number": "555"})
	if err != nil || !outcome.Accepted {
		t.Fatalf("previous: %+v, %v", outcome, err)
	}
	if len(outcome.Scope) != 0 {
		t.Fatalf("previous should validate nothing, scope=%v", outcome.Scope)
	}
	if state.Step != 1 {
		t.Fatalf("expected step 1, got %d", state.Step)
	}
	if diff := cmp.Diff(validStepOne(), state.StepValues(schema.StepOne)); diff != "" {
		t.Fatalf("step1 values lost (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wizard.Values{"phone_number": "555"}, state.StepValues(schema.StepTwo)); diff != "" {
		t.Fatalf("step2 values lost (-want +got):\n%s", diff)
	}
}

func TestNavigate_NextUnavailableOnLastStep(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()

	if _, err := controller.Navigate(state, wizard.IntentNext, validStepOne()); err != nil {
		t.Fatalf("next: %v", err)
	}
	if diff := cmp.Diff([]wizard.Intent{wizard.IntentPrevious, wizard.IntentSubmit}, controller.Available(state)); diff != "" {
		t.Fatalf("available intents mismatch (-want +got):\n%s", diff)
	}

	before := state.Snapshot()
	_, err := controller.Navigate(state, wizard.IntentNext, wizard.Values{"city": "London"})
	if !wizard.IsProtocolError(err) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if diff := cmp.Diff(before, state.Snapshot()); diff != "" {
		t.Fatalf("state changed on protocol error (-want +got):\n%s", diff)
	}
}

func TestNavigate_SubmitBeforeLastStepIsProtocolError(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()

	_, err := controller.Navigate(state, wizard.IntentSubmit, validStepOne())
	if !wizard.IsProtocolError(err) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if state.Visited(schema.StepOne) {
		t.Fatalf("protocol error must not merge values")
	}
}

func TestNavigate_SubmitCompletes(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()
	if _, err := controller.Navigate(state, wizard.IntentNext, validStepOne()); err != nil {
		t.Fatalf("next: %v", err)
	}

	outcome, err := controller.Navigate(state, wizard.IntentSubmit, wizard.Values{
		"city":         "London",
		"phone_number": "",
		"address":      "",
		"ignored":      "extra fields are dropped",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted || !outcome.Completed {
		t.Fatalf("expected completed outcome, got %+v", outcome)
	}
	if state.Step != 2 {
		t.Fatalf("submit must not move, got step %d", state.Step)
	}
	if diff := cmp.Diff(wizard.Scope{schema.StepOne, schema.StepTwo}, outcome.Scope); diff != "" {
		t.Fatalf("scope mismatch (-want +got):\n%s", diff)
	}
	if _, ok := state.Values[schema.StepTwo]["ignored"]; ok {
		t.Fatalf("undeclared field was stored")
	}
}

func TestNavigate_SubmitEmptyCityRejected(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()
	if _, err := controller.Navigate(state, wizard.IntentNext, validStepOne()); err != nil {
		t.Fatalf("next: %v", err)
	}

	outcome, err := controller.Navigate(state, wizard.IntentSubmit, wizard.Values{"city": ""})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted || outcome.Completed {
		t.Fatalf("expected rejection, got %+v", outcome)
	}
	if state.Step != 2 {
		t.Fatalf("expected step 2, got %d", state.Step)
	}
	if diff := cmp.Diff([]string{"city"}, fieldNames(outcome.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigate_SubmitRevalidatesEarlierSteps(t *testing.T) {
	controller := newController(t)
	state := &wizard.State{
		Step: 2,
		Values: map[schema.StepID]wizard.Values{
			schema.StepOne: {"first_name": "Ada"},
		},
	}

	outcome, err := controller.Navigate(state, wizard.IntentSubmit, wizard.Values{"city": "London"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := []string{"last_name", "gender", "birthday"}
	if diff := cmp.Diff(want, fieldNames(outcome.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	for _, fe := range outcome.Errors {
		if fe.Step != schema.StepOne {
			t.Fatalf("expected step1 error, got %+v", fe)
		}
	}
}

func TestNavigate_SubmitChecksRunWithFieldErrors(t *testing.T) {
	check := func(state wizard.State) wizard.ValidationErrors {
		return wizard.ValidationErrors{{Step: schema.StepOne, Field: "first_name", Message: "custom"}}
	}
	controller := newController(t, wizard.WithSubmitCheck(check))
	state := wizard.NewState()
	if _, err := controller.Navigate(state, wizard.IntentNext, validStepOne()); err != nil {
		t.Fatalf("next: %v", err)
	}

	outcome, err := controller.Navigate(state, wizard.IntentSubmit, wizard.Values{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([]string{"city", "first_name"}, fieldNames(outcome.Errors)); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigate_NilState(t *testing.T) {
	if _, err := newController(t).Navigate(nil, wizard.IntentNext, nil); !errors.Is(err, wizard.ErrNilState) {
		t.Fatalf("expected ErrNilState, got %v", err)
	}
}

func TestNavigate_StoresEnumAndDateValuesTrimmed(t *testing.T) {
	controller := newController(t)
	state := wizard.NewState()
	submitted := validStepOne()
	submitted["first_name"] = " Ada "
	submitted["gender"] = " female "
	submitted["birthday"] = "\t1815-12-10 "

	outcome, err := controller.Navigate(state, wizard.IntentNext, submitted)
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("expected acceptance, got errors %+v", outcome.Errors)
	}

	want := wizard.Values{
		"first_name": " Ada ",
		"last_name":  "Lovelace",
		"gender":     "female",
		"birthday":   "1815-12-10",
	}
	if diff := cmp.Diff(want, state.StepValues(schema.StepOne)); diff != "" {
		t.Fatalf("stored values mismatch (-want +got):\n%s", diff)
	}
}
