package widgets

import (
	"testing"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/view"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  view.Field
		expect string
	}{
		{
			name:   "enum select",
			field:  view.Field{Name: "gender", Kind: schema.FieldKindEnum, Options: []string{"male", "female"}},
			expect: WidgetSelect,
		},
		{
			name:   "enum without options falls back to text",
			field:  view.Field{Name: "gender", Kind: schema.FieldKindEnum},
			expect: WidgetText,
		},
		{
			name:   "date input",
			field:  view.Field{Name: "birthday", Kind: schema.FieldKindDate},
			expect: WidgetDate,
		},
		{
			name:   "text input",
			field:  view.Field{Name: "city", Kind: schema.FieldKindText},
			expect: WidgetText,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestRegister_PriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register(WidgetTextarea, 100, Named("address"))

	if got := reg.ResolveOr(view.Field{Name: "address", Kind: schema.FieldKindText}, ""); got != WidgetTextarea {
		t.Fatalf("expected textarea for address, got %q", got)
	}
	if got := reg.ResolveOr(view.Field{Name: "city", Kind: schema.FieldKindText}, ""); got != WidgetText {
		t.Fatalf("expected text for city, got %q", got)
	}
}

func TestRegister_TiesFallBackToRegistrationOrder(t *testing.T) {
	reg := &Registry{}
	reg.Register("first", 10, func(view.Field) bool { return true })
	reg.Register("second", 10, func(view.Field) bool { return true })

	if got, _ := reg.Resolve(view.Field{}); got != "first" {
		t.Fatalf("expected first registration to win a tie, got %q", got)
	}
}

func TestRegister_IgnoresInvalidInput(t *testing.T) {
	reg := &Registry{}
	reg.Register("  ", 10, func(view.Field) bool { return true })
	reg.Register("nil-matcher", 10, nil)

	if got, ok := reg.Resolve(view.Field{}); ok {
		t.Fatalf("expected empty registry to resolve nothing, got %q", got)
	}
	if got := reg.ResolveOr(view.Field{}, WidgetText); got != WidgetText {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestResolve_NilRegistry(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Resolve(view.Field{Kind: schema.FieldKindText}); ok {
		t.Fatalf("nil registry should not resolve")
	}
}
