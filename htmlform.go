// Package htmlform loads form definitions and renders or validates them in one
// call. It wires pkg/source, pkg/definition, pkg/openapi and pkg/theme
// together; use those packages directly for finer control.
//
//	b := htmlform.New(htmlform.WithEscapeAttributes())
//	html, err := b.Render(ctx, "signup.yaml", nil, nil)
package htmlform

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlform/pkg/definition"
	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/openapi"
	"github.com/goliatone/go-htmlform/pkg/source"
	"github.com/goliatone/go-htmlform/pkg/theme"
)

// Option configures a Builder.
type Option func(*Builder)

// WithLoader replaces the source loader used to fetch documents.
func WithLoader(loader *source.Loader) Option {
	return func(b *Builder) {
		if loader != nil {
			b.loader = loader
		}
	}
}

// WithFormOptions passes options to every form the Builder creates.
func WithFormOptions(opts ...form.Option) Option {
	return func(b *Builder) {
		b.formOpts = append(b.formOpts, opts...)
	}
}

// WithOpenAPIOptions passes options to the OpenAPI importer.
func WithOpenAPIOptions(opts ...openapi.Option) Option {
	return func(b *Builder) {
		b.importOpts = append(b.importOpts, opts...)
	}
}

// WithTheme applies a resolved theme to every built form. Partial paths are
// read from files, or used as inline templates when files is nil.
func WithTheme(cfg *gotheme.RendererConfig, files fs.FS) Option {
	return func(b *Builder) {
		b.theme = cfg
		b.themeFiles = files
	}
}

// WithEscapeAttributes turns on attribute escaping for every built form.
func WithEscapeAttributes() Option {
	return func(b *Builder) {
		b.escape = true
	}
}

// WithLogger sets the logger handed to built forms.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder turns document locations into ready-to-render forms.
type Builder struct {
	loader     *source.Loader
	formOpts   []form.Option
	importOpts []openapi.Option
	theme      *gotheme.RendererConfig
	themeFiles fs.FS
	escape     bool
	logger     *slog.Logger
}

// New returns a Builder reading files and http(s) URLs.
func New(opts ...Option) *Builder {
	b := &Builder{
		loader: source.NewLoader(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Document loads the definition document at location, a file path or URL.
func (b *Builder) Document(ctx context.Context, location string) (*definition.Document, error) {
	src, err := source.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("htmlform: %w", err)
	}
	return definition.Load(ctx, b.loader, src)
}

// OpenAPIDocument derives a definition document from one OpenAPI operation.
func (b *Builder) OpenAPIDocument(ctx context.Context, location, operationID string) (*definition.Document, error) {
	src, err := source.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("htmlform: %w", err)
	}
	imp, err := openapi.Load(ctx, b.loader, src, b.importOpts...)
	if err != nil {
		return nil, err
	}
	return imp.Document(operationID)
}

// Build creates a form from doc with the Builder's options and theme. doc is
// not modified.
func (b *Builder) Build(doc *definition.Document) (*form.Form, error) {
	if doc == nil {
		return nil, fmt.Errorf("htmlform: nil document")
	}
	d := *doc
	if b.escape {
		d.Form.EscapeAttributes = true
	}

	opts := append([]form.Option{form.WithLogger(b.logger)}, b.formOpts...)
	f, err := d.Build(opts...)
	if err != nil {
		return nil, err
	}
	if err := theme.Apply(f, b.theme, b.themeFiles); err != nil {
		return nil, fmt.Errorf("htmlform: apply theme: %w", err)
	}
	return f, nil
}

// Form loads and builds the definition at location.
func (b *Builder) Form(ctx context.Context, location string) (*form.Form, error) {
	doc, err := b.Document(ctx, location)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

// OpenAPIForm loads an OpenAPI document and builds the form of operationID.
func (b *Builder) OpenAPIForm(ctx context.Context, location, operationID string) (*form.Form, error) {
	doc, err := b.OpenAPIDocument(ctx, location, operationID)
	if err != nil {
		return nil, err
	}
	return b.Build(doc)
}

// Render builds the form at location, fills it with data when given and
// renders it with vars.
func (b *Builder) Render(ctx context.Context, location string, data *form.Data, vars map[string]any) (string, error) {
	f, err := b.Form(ctx, location)
	if err != nil {
		return "", err
	}
	if data != nil {
		f.SetData(data)
	}
	return f.Render(vars)
}

// Validate builds the form at location and validates data against it. The
// form is returned so callers can render it with the stored errors.
func (b *Builder) Validate(ctx context.Context, location string, data *form.Data) (*form.Form, form.Errors, error) {
	f, err := b.Form(ctx, location)
	if err != nil {
		return nil, nil, err
	}
	if data == nil {
		data = form.NewData()
	}
	return f, f.Validate(data), nil
}
