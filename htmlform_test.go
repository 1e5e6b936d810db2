package htmlform

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gotheme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/ordered"
	"github.com/goliatone/go-htmlform/pkg/theme"
)

const contactDefinition = `
form:
  name: contact
  action: /contact
fields:
  - key: name
    label: Name
    required: true
  - key: message
    inputType: textarea
    label: Message
    rules:
      - type: minLength
        value: 10
`

func writeDefinition(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contact.yaml")
	if err := os.WriteFile(path, []byte(contactDefinition), 0o600); err != nil {
		t.Fatalf("write definition: %v", err)
	}
	return path
}

func TestBuilderRender(t *testing.T) {
	path := writeDefinition(t)

	html, err := New().Render(context.Background(), path,
		form.NewData(ordered.P[any]("name", "Ada")), nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, want := range []string{`<form name="contact"`, `action="/contact"`, `value="Ada"`, `<textarea name="message"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestBuilderValidate(t *testing.T) {
	path := writeDefinition(t)

	f, errs, err := New().Validate(context.Background(), path,
		form.NewData(ordered.P[any]("message", "short")))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := form.Errors{
		"name":    {form.DefaultRequiredText},
		"message": {"Must be at least 10 characters."},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	html, err := f.Render(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Must be at least 10 characters.") {
		t.Fatalf("expected stored errors in %s", html)
	}
}

func TestBuilderAppliesThemeAndEscaping(t *testing.T) {
	path := writeDefinition(t)

	registry := gotheme.NewRegistry()
	if err := registry.Register(&gotheme.Manifest{
		Name:      "plain",
		Version:   "1.0.0",
		Tokens:    map[string]string{"gap": "1rem"},
		Templates: map[string]string{theme.PartialField: `<p data-title="{{{title}}}">{{{inputHtml}}}</p>`},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	cfg, err := theme.Resolve(gotheme.Selector{Registry: registry, DefaultTheme: "plain"}, "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	b := New(WithTheme(cfg, nil), WithEscapeAttributes())
	f, err := b.Form(context.Background(), path)
	if err != nil {
		t.Fatalf("Form: %v", err)
	}
	if !f.Config().EscapeAttributes {
		t.Fatalf("expected escaping to be enabled")
	}

	html, err := f.Render(map[string]any{"title": "<b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`style="--gap: 1rem"`, `data-theme="plain"`, `<p data-title="<b>">`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %s", want, html)
		}
	}
}

func TestBuilderOpenAPIForm(t *testing.T) {
	f, err := New().OpenAPIForm(context.Background(), filepath.Join("pkg", "openapi", "testdata", "signup.yaml"), "createAccount")
	if err != nil {
		t.Fatalf("OpenAPIForm: %v", err)
	}
	if _, ok := f.Field("email"); !ok {
		t.Fatalf("expected email field, got %v", f.FieldNames())
	}
	if got := f.Config().Action; got != "/accounts" {
		t.Fatalf("action = %q", got)
	}
}

func TestBuilderMissingDocument(t *testing.T) {
	if _, err := New().Form(context.Background(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error")
	}
	if _, err := New().Form(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty location")
	}
}

func TestDefaultTemplates(t *testing.T) {
	set := DefaultTemplates()
	if set.Form != form.DefaultFormTemplate || set.Errors != form.DefaultErrorsTemplate {
		t.Fatalf("unexpected defaults %+v", set)
	}
	if _, ok := set.Inputs["select"]; !ok {
		t.Fatalf("expected select input template")
	}
}
