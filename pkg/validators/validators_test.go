package validators

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/ordered"
)

func TestValidators(t *testing.T) {
	data := form.NewData(ordered.P[any]("password", "s3cret"))

	cases := []struct {
		name      string
		validator form.Validator
		value     any
		want      []string
	}{
		{"min length short", MinLength(3, ""), "ab", []string{"Must be at least 3 characters."}},
		{"min length ok", MinLength(3, ""), "abc", nil},
		{"min length counts runes", MinLength(3, ""), "äöü", nil},
		{"min length skips empty", MinLength(3, ""), "", nil},
		{"max length long", MaxLength(2, "Too long."), "abc", []string{"Too long."}},
		{"pattern mismatch", Pattern(regexp.MustCompile(`^\d+$`), ""), "12a", []string{"Invalid format."}},
		{"pattern number", Pattern(regexp.MustCompile(`^\d+$`), ""), 42, nil},
		{"email invalid", Email(""), "nope", []string{"Invalid email address."}},
		{"email valid", Email(""), "a@example.com", nil},
		{"url invalid", URL(""), "example.com", []string{"Invalid URL."}},
		{"url valid", URL(""), "https://example.com/x", nil},
		{"one of scalar", OneOf([]string{"1", "2"}, ""), "3", []string{"Invalid choice."}},
		{"one of list", OneOf([]string{"1", "2"}, ""), []string{"1", "2"}, nil},
		{"one of list with stranger", OneOf([]string{"1", "2"}, ""), []any{"1", 9}, []string{"Invalid choice."}},
		{"equals field mismatch", EqualsField("password", "Passwords differ."), "other", []string{"Passwords differ."}},
		{"equals field match", EqualsField("password", ""), "s3cret", nil},
		{"equals field skips empty", EqualsField("password", ""), "", nil},
		{"min items", MinItems(2, ""), []string{"1"}, []string{"Select at least 2 options."}},
		{"min items scalar", MinItems(1, ""), "x", nil},
		{"min items empty list", MinItems(1, ""), []string{}, []string{"Select at least 1 options."}},
		{"min items skips nil", MinItems(1, ""), nil, nil},
		{"min items skips empty string", MinItems(1, ""), "", nil},
		{"max items", MaxItems(1, ""), []string{"1", "2"}, []string{"Select at most 1 options."}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.validator.Validate("field", tc.value, data)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChain(t *testing.T) {
	v := Chain(MinLength(5, "short"), nil, Pattern(regexp.MustCompile(`^[a-z]+$`), "lower"))

	got := v.Validate("name", "AB", nil)
	if diff := cmp.Diff([]string{"short", "lower"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if got := v.Validate("name", "abcdef", nil); len(got) != 0 {
		t.Fatalf("expected no errors, got %v", got)
	}
}

func TestValidatorsOnField(t *testing.T) {
	field := form.NewField(form.FieldConfig{
		Required:  true,
		Validator: Chain(MinLength(3, "")),
	})

	if diff := cmp.Diff([]string{form.DefaultRequiredText}, field.Validate("nick", "", nil)); diff != "" {
		t.Fatalf("required only expected (-want +got):\n%s", diff)
	}
}
