package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

func TestState_MergePreservesOtherSteps(t *testing.T) {
	state := NewState()
	state.Merge(schema.StepOne, Values{"first_name": "Ada"})
	state.Merge(schema.StepTwo, Values{"city": "London"})
	state.Merge(schema.StepOne, Values{"first_name": "Grace"})

	want := map[schema.StepID]Values{
		schema.StepOne: {"first_name": "Grace"},
		schema.StepTwo: {"city": "London"},
	}
	if diff := cmp.Diff(want, state.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestState_MergeCopiesInput(t *testing.T) {
	state := NewState()
	input := Values{"first_name": "Ada"}
	state.Merge(schema.StepOne, input)
	input["first_name"] = "changed"

	if got := state.Values[schema.StepOne]["first_name"]; got != "Ada" {
		t.Fatalf("merge kept a reference to the caller map, got %q", got)
	}
}

func TestState_SnapshotIsDeepCopy(t *testing.T) {
	state := NewState()
	state.Merge(schema.StepOne, Values{"first_name": "Ada"})

	snapshot := state.Snapshot()
	snapshot.Values[schema.StepOne]["first_name"] = "mutated"
	snapshot.Values[schema.StepTwo] = Values{"city": "x"}
	snapshot.Step = 2

	if state.Values[schema.StepOne]["first_name"] != "Ada" || state.Visited(schema.StepTwo) || state.Step != 1 {
		t.Fatalf("snapshot shares state with the original: %+v", state)
	}
}

func TestState_AdvanceAndRetreatClamp(t *testing.T) {
	state := NewState()

	state.Retreat()
	if state.Step != 1 {
		t.Fatalf("retreat at first step moved to %d", state.Step)
	}

	state.Advance(2)
	state.Advance(2)
	if state.Step != 2 {
		t.Fatalf("advance at last step moved to %d", state.Step)
	}

	state.Retreat()
	if state.Step != 1 {
		t.Fatalf("expected step 1, got %d", state.Step)
	}
}

func TestParseIntent(t *testing.T) {
	cases := map[string]Intent{
		"next":      IntentNext,
		" Previous": IntentPrevious,
		"prev":      IntentPrevious,
		"back":      IntentPrevious,
		"SUBMIT":    IntentSubmit,
	}
	for raw, want := range cases {
		got, err := ParseIntent(raw)
		if err != nil || got != want {
			t.Fatalf("ParseIntent(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseIntent("jump"); err == nil {
		t.Fatalf("expected error for unknown intent")
	}
}

func TestAvailableIntents(t *testing.T) {
	if diff := cmp.Diff([]Intent{IntentNext}, AvailableIntents(1, 2)); diff != "" {
		t.Fatalf("step 1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Intent{IntentPrevious, IntentSubmit}, AvailableIntents(2, 2)); diff != "" {
		t.Fatalf("step 2 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Intent{IntentPrevious, IntentNext}, AvailableIntents(2, 3)); diff != "" {
		t.Fatalf("middle step mismatch (-want +got):\n%s", diff)
	}
}
