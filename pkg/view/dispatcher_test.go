package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/view"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func TestDispatch_FreshStateUsesDefaults(t *testing.T) {
	dispatcher := view.NewDispatcher(steps.Registration())

	desc, err := dispatcher.Dispatch(*wizard.NewState(), nil, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if desc.Title != "Personal information" || desc.StepID != schema.StepOne || desc.Total != 2 {
		t.Fatalf("unexpected header: %+v", desc)
	}
	gender, ok := desc.Field("gender")
	if !ok || gender.Value != "male" {
		t.Fatalf("expected gender default male, got %+v", gender)
	}
	wantButtons := []view.Button{{Intent: wizard.IntentNext, Label: "Complete your location information", Primary: true}}
	if diff := cmp.Diff(wantButtons, desc.Buttons); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
	if !desc.MessagesCleared || len(desc.Messages) != 0 {
		t.Fatalf("expected cleared messages, got %+v", desc.Messages)
	}
}

func TestDispatch_PrefillsStoredValues(t *testing.T) {
	dispatcher := view.NewDispatcher(steps.Registration(),
		view.WithButtonLabel(wizard.IntentSubmit, "Register"))

	state := wizard.State{Step: 2, Values: map[schema.StepID]wizard.Values{
		schema.StepOne: {"first_name": "Ada"},
		schema.StepTwo: {"city": "London"},
	}}
	desc, err := dispatcher.Dispatch(state, nil, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var got []string
	for _, field := range desc.Fields {
		got = append(got, field.Name+"="+field.Value)
	}
	want := []string{"city=London", "phone_number=", "address="}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	wantButtons := []view.Button{
		{Intent: wizard.IntentPrevious, Label: "Check your personal information"},
		{Intent: wizard.IntentSubmit, Label: "Register", Primary: true},
	}
	if diff := cmp.Diff(wantButtons, desc.Buttons); diff != "" {
		t.Fatalf("buttons mismatch (-want +got):\n%s", diff)
	}
	if desc.Offers(wizard.IntentNext) {
		t.Fatalf("next must not be offered on the last step")
	}
}

func TestDispatch_MessagesAreShownOnce(t *testing.T) {
	dispatcher := view.NewDispatcher(steps.Registration())
	state := wizard.NewState()
	notices := &view.Notices{}
	notices.Warning("  storage is slow ")
	notices.Warning("storage is slow")

	errs := wizard.ValidationErrors{{Step: schema.StepOne, Field: "first_name", Message: "First name field is required."}}
	first, err := dispatcher.Dispatch(*state, errs, notices)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	want := []view.Message{
		{Level: view.LevelError, Text: "First name field is required.", Step: schema.StepOne, Field: "first_name"},
		{Level: view.LevelWarning, Text: "storage is slow"},
	}
	if diff := cmp.Diff(want, first.Messages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	field, _ := first.Field("first_name")
	if !field.Invalid() {
		t.Fatalf("expected first_name to carry its error")
	}

	// The user fixes the field: nothing from the previous render survives.
	second, err := dispatcher.Dispatch(*state, nil, notices)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(second.Messages) != 0 || !second.MessagesCleared {
		t.Fatalf("expected messages cleared, got %+v", second.Messages)
	}
	if notices.Len() != 0 {
		t.Fatalf("notices not drained")
	}
}

func TestDispatch_DoesNotMutateState(t *testing.T) {
	dispatcher := view.NewDispatcher(steps.Registration())
	state := wizard.NewState()
	before := state.Snapshot()

	if _, err := dispatcher.Dispatch(*state, nil, nil); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if diff := cmp.Diff(before, state.Snapshot()); diff != "" {
		t.Fatalf("state mutated (-want +got):\n%s", diff)
	}
}

func TestDispatch_OutOfRangeStep(t *testing.T) {
	dispatcher := view.NewDispatcher(steps.Registration())
	if _, err := dispatcher.Dispatch(wizard.State{Step: 3}, nil, nil); err == nil {
		t.Fatalf("expected error for step 3")
	}
}
