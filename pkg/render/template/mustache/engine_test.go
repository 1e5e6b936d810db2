package mustache

import (
	"bytes"
	"io"
	"testing"

	"github.com/goliatone/go-htmlform/pkg/testsupport"
)

func TestRenderStringInterpolation(t *testing.T) {
	engine := New()

	cases := []struct {
		name     string
		template string
		data     map[string]any
		want     string
	}{
		{"escaped", "<b>{{x}}</b>", map[string]any{"x": "<i>"}, "<b>&lt;i&gt;</b>"},
		{"raw", "<b>{{{x}}}</b>", map[string]any{"x": "<i>"}, "<b><i></b>"},
		{"missing", "[{{missing}}]", map[string]any{}, "[]"},
		{"section list", "{{#items}}<li>{{.}}</li>{{/items}}", map[string]any{"items": []string{"a", "b"}}, "<li>a</li><li>b</li>"},
		{"section empty list", "{{#items}}<li>{{.}}</li>{{/items}}", map[string]any{"items": []string{}}, ""},
		{"section truthy", "{{#on}}yes{{/on}}", map[string]any{"on": true}, "yes"},
		{"section falsy", "{{#on}}yes{{/on}}", map[string]any{"on": false}, ""},
		{"inverted falsy", "{{^on}}no{{/on}}", map[string]any{"on": false}, "no"},
		{"inverted truthy", "{{^on}}no{{/on}}", map[string]any{"on": true}, ""},
		{"section records", "{{#options}}{{optionValue}}={{optionText}};{{/options}}", map[string]any{
			"options": []map[string]any{
				{"optionValue": "1", "optionText": "cat"},
				{"optionValue": "2", "optionText": "dog"},
			},
		}, "1=cat;2=dog;"},
		{"parent lookup in section", "{{#note}}<div class=\"{{noteClasses}}\">{{note}}</div>{{/note}}", map[string]any{
			"note": "hi", "noteClasses": "note",
		}, `<div class="note">hi</div>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.RenderString(tc.template, tc.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRenderStringWritesToOutputs(t *testing.T) {
	engine := New()
	var second bytes.Buffer

	got := testsupport.CaptureRender(t, func(w io.Writer) (string, error) {
		return engine.RenderString("hello {{name}}", map[string]any{"name": "form"}, w, &second)
	})
	if got != "hello form" || second.String() != got {
		t.Fatalf("outputs differ: %q %q", got, second.String())
	}
}

func TestRenderStringEmptyTemplate(t *testing.T) {
	got, err := New().RenderString("", map[string]any{"x": 1})
	if err != nil || got != "" {
		t.Fatalf("expected empty output, got %q (%v)", got, err)
	}
}

func TestRenderStringParseError(t *testing.T) {
	if _, err := New().RenderString("{{#open}}never closed", nil); err == nil {
		t.Fatalf("expected parse error for unclosed section")
	}
}

func TestRenderStringPartials(t *testing.T) {
	engine := New(WithPartials(map[string]string{"greeting": "hi {{name}}"}))
	got, err := engine.RenderString("<p>{{> greeting}}</p>", map[string]any{"name": "ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>hi ada</p>" {
		t.Fatalf("unexpected partial output: %q", got)
	}
}

func TestRenderStringCachesParsedTemplates(t *testing.T) {
	engine := New()
	for i := 0; i < 3; i++ {
		if _, err := engine.RenderString("{{x}}", map[string]any{"x": i}); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	if len(engine.templates) != 1 {
		t.Fatalf("expected one cached template, got %d", len(engine.templates))
	}

	uncached := New(WithoutCache())
	if _, err := uncached.RenderString("{{x}}", nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(uncached.templates) != 0 {
		t.Fatalf("expected no cached templates")
	}
}
