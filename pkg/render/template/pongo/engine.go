// Package pongo implements template.TemplateRenderer on top of
// github.com/flosch/pongo2 for callers whose form templates use Django-style
// syntax (`{{ name }}`, `{% for option in options %}`). Autoescaping is on,
// so pre-rendered fragments such as inputHtml need the `safe` filter.
package pongo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-htmlform/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates  fs.FS
	globalData map[string]any
}

// WithFS exposes a filesystem to `{% include %}` and `{% extends %}` tags.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders string templates with a private pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files := cfg.templates
	if files == nil {
		files = emptyFS{}
	}

	engine := &Engine{
		templateSet: pongo2.NewSet("htmlform", pongo2.NewFSLoader(files)),
		templates:   make(map[string]*pongo2.Template),
	}
	registerDefaultFilters()

	if len(cfg.globalData) > 0 {
		engine.templateSet.Globals = make(pongo2.Context, len(cfg.globalData))
		engine.templateSet.Globals.Update(cfg.globalData)
	}
	return engine, nil
}

// RenderString interpolates templateContent against data. data must be nil,
// a map[string]any or a pongo2.Context.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("pongo: engine is nil")
	}
	if templateContent == "" {
		return "", template.WriteAll("", out...)
	}

	tmpl, err := e.getTemplate(templateContent)
	if err != nil {
		return "", err
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}

	rendered := buf.String()
	if err := template.WriteAll(rendered, out...); err != nil {
		return "", err
	}
	return rendered, nil
}

// RegisterFilter registers a global pongo2 filter. Filters are process-wide in
// pongo2, so registering an existing name is an error.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	if strings.TrimSpace(name) == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}

	filter := func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var paramVal any
		if param != nil {
			paramVal = param.Interface()
		}
		result, err := fn(in.Interface(), paramVal)
		if err != nil {
			return nil, &pongo2.Error{Sender: "custom_filter", OrigError: err}
		}
		return pongo2.AsValue(result), nil
	}

	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, filter)
}

func (e *Engine) getTemplate(content string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[content]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[content]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromString(content)
	if err != nil {
		return nil, fmt.Errorf("pongo: parse template string: %w", err)
	}
	e.templates[content] = tmpl
	return tmpl, nil
}

func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	default:
		return nil, fmt.Errorf("pongo: unsupported data type %T", data)
	}
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("squash") {
		_ = pongo2.RegisterFilter("squash", filterSquash)
	}
}

// filterSquash collapses whitespace runs left behind by empty attribute
// slots. Its output is escaped like any other value; chain `safe` after it
// for markup.
func filterSquash(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	if s == "" {
		return in, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return pongo2.AsValue(b.String()), nil
}
