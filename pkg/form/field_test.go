package form

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/attributes"
	"github.com/goliatone/go-htmlform/pkg/ordered"
	"github.com/goliatone/go-htmlform/pkg/testsupport"
)

func petOptions() *ordered.Map[string] {
	return ordered.New(ordered.P("1", "cat"), ordered.P("2", "dog"))
}

func TestFieldValidate_RequiredText(t *testing.T) {
	field := NewField(FieldConfig{
		Name:         "username",
		InputType:    "text",
		Required:     true,
		RequiredText: "Required.",
	})

	for _, value := range []any{"", nil} {
		got := field.Validate("username", value, NewData())
		if diff := cmp.Diff([]string{"Required."}, got); diff != "" {
			t.Fatalf("validate(%v) mismatch (-want +got):\n%s", value, diff)
		}
	}
}

func TestFieldValidate_FallbackRequiredText(t *testing.T) {
	field := NewField(FieldConfig{Required: true})

	if diff := cmp.Diff([]string{DefaultRequiredText}, field.Validate("x", "", nil)); diff != "" {
		t.Fatalf("default text mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Form level."}, field.validate("x", "", nil, "Form level.")); diff != "" {
		t.Fatalf("form fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldValidate_DisabledOrReadonlySkipsRequired(t *testing.T) {
	cases := map[string]FieldConfig{
		"disabled": {Required: true, Disabled: true},
		"readonly": {Required: true, Readonly: true},
		"both":     {Required: true, Disabled: true, Readonly: true},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			got := NewField(cfg).Validate("username", "", nil)
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty non-nil errors, got %#v", got)
			}
		})
	}
}

func TestFieldValidate_EmptyListIsPresent(t *testing.T) {
	field := NewField(FieldConfig{Required: true, InputType: "checkbox"})
	if got := field.Validate("hobbies", []string{}, nil); len(got) != 0 {
		t.Fatalf("empty list should pass the required-check, got %v", got)
	}
}

func TestFieldValidate_ValidatorAndRender(t *testing.T) {
	field := NewField(FieldConfig{
		InputType: "select",
		Options:   petOptions(),
		Validator: ValidatorFunc(func(_ string, value any, _ *Data) []string {
			if value != "1" {
				return []string{"Pick cat."}
			}
			return nil
		}),
	})

	got := field.Validate("pet", "2", NewData())
	if diff := cmp.Diff([]string{"Pick cat."}, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pick cat."}, field.Errors()); diff != "" {
		t.Fatalf("stored errors mismatch (-want +got):\n%s", diff)
	}
	if field.Value() != "2" {
		t.Fatalf("expected stored value 2, got %v", field.Value())
	}

	var captured map[string]any
	stub := stubRenderer(func(tmpl string, data map[string]any) string {
		if _, ok := data["options"]; ok {
			captured = data
		}
		return ""
	})
	if _, err := field.Render(WithRenderer(stub), WithDefaults(Defaults{Name: "pet"})); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []map[string]any{
		{"optionValue": "1", "optionText": "cat", "optionSelected": false},
		{"optionValue": "2", "optionText": "dog", "optionSelected": true},
	}
	if diff := cmp.Diff(want, captured["options"]); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
	if captured["hasSelectedOption"] != true {
		t.Fatalf("expected hasSelectedOption")
	}
	if captured["selectedOptionText"] != "dog" {
		t.Fatalf("expected selectedOptionText dog, got %v", captured["selectedOptionText"])
	}
}

func TestFieldValidate_FalsyKeepsPreviousValue(t *testing.T) {
	field := NewField(FieldConfig{InputType: "submit", Value: "Submit Form"})

	field.Validate("submit", nil, nil)
	if field.Value() != "Submit Form" {
		t.Fatalf("expected caption to survive, got %v", field.Value())
	}
	field.Validate("submit", "", nil)
	if field.Value() != "Submit Form" {
		t.Fatalf("expected caption to survive empty string, got %v", field.Value())
	}
	field.Validate("submit", "Go", nil)
	if field.Value() != "Go" {
		t.Fatalf("expected truthy value to be stored, got %v", field.Value())
	}
}

func TestFieldValidate_MultipleValues(t *testing.T) {
	field := NewField(FieldConfig{
		Name:      "hobbies",
		InputType: "checkbox",
		Options:   ordered.New(ordered.P("123", "Cycling"), ordered.P("456", "Running")),
		Validator: ValidatorFunc(func(_ string, value any, _ *Data) []string {
			if list, ok := value.([]string); ok && len(list) == 2 {
				return nil
			}
			return []string{"You must tick both options."}
		}),
	})

	if got := field.Validate("hobbies", []string{"123", "456"}, nil); len(got) != 0 {
		t.Fatalf("expected no errors, got %v", got)
	}
	html, err := field.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Count(html, "checked") != 2 {
		t.Fatalf("expected both boxes checked:\n%s", html)
	}
}

func TestFieldRender_ReadonlyText(t *testing.T) {
	field := NewField(FieldConfig{
		InputType:    "text",
		Name:         "username",
		Label:        "Username",
		Required:     true,
		RequiredText: "What is your username?",
		FieldClasses: []string{"field"},
	})
	field.SetReadonly(true)

	html, err := field.Render(WithDefaults(Defaults{ErrorsTemplate: "{{#errors}}{{.}}{{/errors}}"}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div class="field"><label for="username" class="">Username</label>` +
		`<input name="username" type="text" value="" readonly required class="" /></div>`
	if diff := cmp.Diff(want, testsupport.StripWhitespace(html, false)); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldRender_SelectWithErrors(t *testing.T) {
	field := NewField(FieldConfig{
		InputType:       "select",
		Name:            "pet",
		Label:           "Pets",
		EmptyOptionText: "--- Please choose a pet ---",
		Options:         petOptions(),
		FieldClasses:    []string{"field"},
		Validator: ValidatorFunc(func(_ string, value any, _ *Data) []string {
			if value != "cat" {
				return []string{"You must choose a cat."}
			}
			return nil
		}),
	})
	field.Validate("pet", "dog", nil)

	html, err := field.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div class="field"><label for="pet" class="">Pets</label>` +
		`<select name="pet" class=""> <option value="" selected>--- Please choose a pet ---</option>` +
		` <option value="1" >cat</option> <option value="2" >dog</option></select>` +
		`<div class="errors"><ul><li>You must choose a cat.</li></ul></div></div>`
	if diff := testsupport.CompareHTML(want, html); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldRender_InputAttributesOverrideFlags(t *testing.T) {
	field := NewField(FieldConfig{
		Name:     "code",
		Disabled: true,
		Required: true,
		InputAttributes: attributes.New(
			ordered.P[any]("required", nil),
			ordered.P[any]("maxlength", 8),
		),
	})

	var attrs string
	stub := stubRenderer(func(_ string, data map[string]any) string {
		if _, ok := data["inputType"]; ok {
			attrs = data["attributes"].(string)
		}
		return ""
	})
	if _, err := field.Render(WithRenderer(stub)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if attrs != `disabled maxlength="8"` {
		t.Fatalf("unexpected attributes %q", attrs)
	}
}

func TestFieldRender_CallerVariablesWinInFieldTemplate(t *testing.T) {
	field := NewField(FieldConfig{
		Name:          "title",
		Label:         "Title",
		FieldTemplate: "{{label}}|{{mode}}|{{{inputHtml}}}",
		InputTemplate: "{{mode}}:{{name}}",
	})

	html, err := field.Render(
		WithVariables(map[string]any{"label": "Override", "mode": "edit"}),
		withInherited(map[string]any{"mode": "view", "name": "ignored"}),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "Override|edit|view:title" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestFieldRender_Idempotent(t *testing.T) {
	field := NewField(FieldConfig{
		Name:      "pet",
		InputType: "radio",
		Options:   petOptions(),
		Value:     "1",
	})
	first, err := field.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := field.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatalf("render not idempotent:\n%s\n%s", first, second)
	}
}

func TestFieldRender_SanitizesHTMLValueAndNote(t *testing.T) {
	field := NewField(FieldConfig{
		Name:          "intro",
		InputType:     "html",
		Value:         `<p>hi</p><script>x()</script>`,
		Note:          `<b>note</b><script>y()</script>`,
		FieldTemplate: "{{{inputHtml}}}|{{{note}}}",
	})

	html, err := field.Render(withSanitizer(func(s string) string {
		return strings.NewReplacer("<script>x()</script>", "", "<script>y()</script>", "").Replace(s)
	}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if html != "<p>hi</p>|<b>note</b>" {
		t.Fatalf("unexpected output %q", html)
	}
}

func TestFieldRender_PropagatesRendererError(t *testing.T) {
	field := NewField(FieldConfig{Name: "broken", InputTemplate: "{{#open}}"})
	if _, err := field.Render(); err == nil || !strings.Contains(err.Error(), `field "broken"`) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
}

func TestNewField_CopiesConfig(t *testing.T) {
	classes := []string{"a"}
	options := petOptions()
	value := []string{"1"}
	field := NewField(FieldConfig{FieldClasses: classes, Options: options, Value: value})

	classes[0] = "mutated"
	options.Set("3", "bird")
	value[0] = "2"

	cfg := field.Config()
	if cfg.FieldClasses[0] != "a" || cfg.Options.Len() != 2 {
		t.Fatalf("config shares state with caller: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"1"}, field.Value()); diff != "" {
		t.Fatalf("value shares state with caller (-want +got):\n%s", diff)
	}
	if cfg.InputType != DefaultInputType || cfg.EmptyOptionText != DefaultEmptyOptionText {
		t.Fatalf("defaults not merged: %+v", cfg)
	}
}
