// Package mustache implements template.TemplateRenderer with
// github.com/cbroglie/mustache. It provides escaped `{{x}}` and raw `{{{x}}}`
// interpolation, sections `{{#x}}…{{/x}}` that repeat per list element or
// render once for truthy values, and inverted sections `{{^x}}…{{/x}}`.
// Missing variables render as empty strings.
package mustache

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cbroglie/mustache"

	"github.com/goliatone/go-htmlform/pkg/render/template"
)

// Option configures the Engine before construction.
type Option func(*config)

type config struct {
	partials map[string]string
	noCache  bool
}

// WithPartials registers named partials resolved by `{{> name}}`.
func WithPartials(partials map[string]string) Option {
	return func(cfg *config) {
		if len(partials) == 0 {
			return
		}
		if cfg.partials == nil {
			cfg.partials = make(map[string]string, len(partials))
		}
		for name, content := range partials {
			cfg.partials[strings.TrimSpace(name)] = content
		}
	}
}

// WithoutCache disables the parsed template cache.
func WithoutCache() Option {
	return func(cfg *config) {
		cfg.noCache = true
	}
}

// Engine renders mustache templates. Parsed templates are cached by their
// source text so repeated renders of the same form skip parsing. It is safe
// for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	templates map[string]*mustache.Template
	partials  *mustache.StaticProvider
	noCache   bool
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) *Engine {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return &Engine{
		templates: make(map[string]*mustache.Template),
		partials:  &mustache.StaticProvider{Partials: cfg.partials},
		noCache:   cfg.noCache,
	}
}

// RenderString interpolates templateContent against data.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil {
		return "", errors.New("mustache: engine is nil")
	}
	if templateContent == "" {
		return "", template.WriteAll("", out...)
	}

	tmpl, err := e.parse(templateContent)
	if err != nil {
		return "", err
	}

	rendered, err := tmpl.Render(data)
	if err != nil {
		return "", fmt.Errorf("mustache: execute template: %w", err)
	}
	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

func (e *Engine) parse(content string) (*mustache.Template, error) {
	if !e.noCache {
		e.mu.RLock()
		tmpl, ok := e.templates[content]
		e.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	tmpl, err := mustache.ParseStringPartials(content, e.partials)
	if err != nil {
		return nil, fmt.Errorf("mustache: parse template: %w", err)
	}

	if !e.noCache {
		e.mu.Lock()
		e.templates[content] = tmpl
		e.mu.Unlock()
	}
	return tmpl, nil
}
