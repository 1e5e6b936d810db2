package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-htmlform/pkg/prompt"
)

const definitionYAML = `
form:
  name: contact
  action: /contact
fields:
  - key: name
    label: Name
    required: true
  - key: topic
    inputType: select
    required: true
    options:
      sales: Sales
      support: Support
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	out := a.out.(*bytes.Buffer)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	t.Chdir(t.TempDir())
	return newApp(&bytes.Buffer{}, io.Discard)
}

func TestRenderCommand(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)
	data := writeFile(t, ".", "data.json", `{"name": "Ada", "topic": "support"}`)

	out, err := run(t, a, "render", def, "--data", data, "--var", "extra=1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<form name="contact"`, `value="Ada"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
	if !regexp.MustCompile(`value="support"\s+selected`).MatchString(out) {
		t.Fatalf("expected support to be selected in %s", out)
	}
}

func TestRenderCommandWritesOutput(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)

	if _, err := run(t, a, "render", def, "-o", "out.html"); err != nil {
		t.Fatalf("render: %v", err)
	}
	html, err := os.ReadFile("out.html")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(html), `<form name="contact"`) {
		t.Fatalf("unexpected output %s", html)
	}
}

func TestRenderCommandWithThemeDir(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)
	writeFile(t, "theme", "theme.yaml", "name: mono\nversion: \"1.0.0\"\ntokens:\n  ink: black\ntemplates:\n  forms.field: field.mustache\n")
	writeFile(t, "theme", "field.mustache", `<p class="mono">{{{inputHtml}}}</p>`)

	out, err := run(t, a, "render", def, "--theme-dir", "theme")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<p class="mono">`, `style="--ink: black"`, `data-theme="mono"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)
	bad := writeFile(t, ".", "bad.yaml", "topic: support\n")
	good := writeFile(t, ".", "good.yaml", "name: Ada\ntopic: sales\n")

	out, err := run(t, a, "validate", def, "--data", bad)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(out, "name") || !strings.Contains(out, "This field is required.") {
		t.Fatalf("unexpected report %s", out)
	}

	a = newApp(&bytes.Buffer{}, io.Discard)
	out, err = run(t, a, "validate", def, "--data", good)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "contact is valid") {
		t.Fatalf("unexpected report %s", out)
	}
}

func TestValidateCommandRequiresData(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)
	if _, err := run(t, a, "validate", def); err == nil {
		t.Fatal("expected error without --data")
	}
}

type scriptedDriver struct {
	prompt.PromptDriver
	inputs  []string
	selects []int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestFillCommand(t *testing.T) {
	a := newTestApp(t)
	a.driver = &scriptedDriver{inputs: []string{"Ada"}, selects: []int{1}}
	def := writeFile(t, ".", "contact.yaml", definitionYAML)

	out, err := run(t, a, "fill", def)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !strings.Contains(out, `"name": "Ada"`) || !strings.Contains(out, `"topic": "support"`) {
		t.Fatalf("unexpected data %s", out)
	}
}

func TestOperationsCommand(t *testing.T) {
	a := newApp(&bytes.Buffer{}, io.Discard)
	spec, err := filepath.Abs(filepath.Join("..", "..", "pkg", "openapi", "testdata", "signup.yaml"))
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	out, err := run(t, a, "operations", spec)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if !strings.Contains(out, "createAccount\n") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestServeHandler(t *testing.T) {
	a := newTestApp(t)
	def := writeFile(t, ".", "contact.yaml", definitionYAML)
	if err := a.init(a.rootCmd()); err != nil {
		t.Fatalf("init: %v", err)
	}

	b, err := a.builder()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	doc, err := a.document(context.Background(), b, def)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	h, err := a.serveHandler(b, doc, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("serveHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<form name="contact"`) {
		t.Fatalf("GET / = %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `htmlform_renders_total{form="contact",status="200"} 1`) {
		t.Fatalf("metrics missing render counter:\n%s", rec.Body.String())
	}
}

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"a=1", "b=x=y"})
	if err != nil {
		t.Fatalf("parseVars: %v", err)
	}
	if vars["a"] != "1" || vars["b"] != "x=y" {
		t.Fatalf("unexpected vars %v", vars)
	}
	if _, err := parseVars([]string{"novalue"}); err == nil {
		t.Fatal("expected error")
	}
}
