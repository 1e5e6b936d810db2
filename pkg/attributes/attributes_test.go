package attributes

import (
	"testing"

	"github.com/goliatone/go-htmlform/pkg/ordered"
)

func TestStringSerialisesNullEmptyAndValues(t *testing.T) {
	attrs := New(
		ordered.P[any]("a", 1),
		ordered.P[any]("b", ""),
		ordered.P[any]("c", nil),
	)

	if got := String(attrs); got != `a="1" b` {
		t.Fatalf("unexpected attribute string: %q", got)
	}
}

func TestStringKeepsInsertionOrder(t *testing.T) {
	attrs := New(
		ordered.P[any]("enctype", "multipart/form-data"),
		ordered.P[any]("novalidate", ""),
		ordered.P[any]("required", nil),
		ordered.P[any]("onsubmit", "submitHandler(event)"),
	)

	want := `enctype="multipart/form-data" novalidate onsubmit="submitHandler(event)"`
	if got := String(attrs); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestStringNilAndEmpty(t *testing.T) {
	if got := String(nil); got != "" {
		t.Fatalf("expected empty string for nil attributes, got %q", got)
	}
	if got := String(New()); got != "" {
		t.Fatalf("expected empty string for empty attributes, got %q", got)
	}
}

func TestStringDoesNotEscapeByDefault(t *testing.T) {
	attrs := New(ordered.P[any]("title", `a "quoted" <b>`))

	if got := String(attrs); got != `title="a "quoted" <b>"` {
		t.Fatalf("expected raw value, got %q", got)
	}
	if got := String(attrs, WithEscaping(true)); got != `title="a &#34;quoted&#34; &lt;b&gt;"` {
		t.Fatalf("expected escaped value, got %q", got)
	}
}

func TestMergeOverlayWinsAndKeepsPosition(t *testing.T) {
	base := New(
		ordered.P[any]("disabled", Bool(false)),
		ordered.P[any]("readonly", Bool(true)),
		ordered.P[any]("required", Bool(true)),
	)
	overlay := New(
		ordered.P[any]("rows", 10),
		ordered.P[any]("required", nil),
	)

	merged := Merge(base, overlay)
	if got := String(merged); got != `readonly rows="10"` {
		t.Fatalf("unexpected merged attributes: %q", got)
	}
	if got := String(base); got != "readonly required" {
		t.Fatalf("base mutated: %q", got)
	}
	if want := []string{"disabled", "readonly", "required", "rows"}; len(merged.Keys()) != len(want) {
		t.Fatalf("unexpected key order: %v", merged.Keys())
	}
}
