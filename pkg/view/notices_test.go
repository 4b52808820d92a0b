package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNotices_DrainNormalises(t *testing.T) {
	var notices Notices
	notices.Status("Your profile has been created.")
	notices.Add("", "  ")
	notices.Error("boom")
	notices.Status(" Your profile has been created. ")
	notices.Warning("boom")

	want := []Notice{
		{Level: LevelStatus, Text: "Your profile has been created."},
		{Level: LevelError, Text: "boom"},
		{Level: LevelWarning, Text: "boom"},
	}
	if diff := cmp.Diff(want, notices.Peek()); diff != "" {
		t.Fatalf("peek mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, notices.Drain()); diff != "" {
		t.Fatalf("drain mismatch (-want +got):\n%s", diff)
	}
	if got := notices.Drain(); got != nil {
		t.Fatalf("expected empty drain, got %+v", got)
	}
}

func TestNotices_NilSafe(t *testing.T) {
	var notices *Notices
	if notices.Len() != 0 || notices.Drain() != nil || notices.Peek() != nil {
		t.Fatalf("nil notices should behave as empty")
	}
}
