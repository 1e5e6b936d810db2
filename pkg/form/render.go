package form

import (
	"maps"
	"sync"

	"github.com/goliatone/go-htmlform/pkg/attributes"
	"github.com/goliatone/go-htmlform/pkg/render/template"
	"github.com/goliatone/go-htmlform/pkg/render/template/mustache"
)

var (
	defaultRendererOnce sync.Once
	defaultRenderer     template.TemplateRenderer
)

// DefaultRenderer returns the shared mustache engine used when no renderer is
// supplied.
func DefaultRenderer() template.TemplateRenderer {
	defaultRendererOnce.Do(func() {
		defaultRenderer = mustache.New()
	})
	return defaultRenderer
}

// Defaults are fallbacks a parent resolves for a child it renders. They only
// apply where the child's own configuration is empty, so explicit field or
// fieldset settings always win.
type Defaults struct {
	Name             string
	FieldTemplate    string
	InputTemplate    string
	ErrorsTemplate   string
	FieldsetTemplate string
}

// RenderOption configures a single Field or Fieldset render call.
type RenderOption func(*renderState)

type renderState struct {
	renderer  template.TemplateRenderer
	defaults  Defaults
	variables map[string]any
	inherited map[string]any
	escape    bool
	sanitize  func(string) string
}

// WithVariables overlays caller variables on the outermost template. Caller
// keys replace computed keys of the same name.
func WithVariables(vars map[string]any) RenderOption {
	return func(s *renderState) {
		if len(vars) == 0 {
			return
		}
		if s.variables == nil {
			s.variables = make(map[string]any, len(vars))
		}
		maps.Copy(s.variables, vars)
	}
}

// WithDefaults supplies fallbacks for settings the child left empty.
func WithDefaults(defaults Defaults) RenderOption {
	return func(s *renderState) {
		s.defaults = defaults
	}
}

// WithRenderer selects the template engine for the call.
func WithRenderer(renderer template.TemplateRenderer) RenderOption {
	return func(s *renderState) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// withInherited passes form-level variables down. They sit below every
// computed key so they can only fill gaps such as mode flags.
func withInherited(vars map[string]any) RenderOption {
	return func(s *renderState) {
		s.inherited = vars
	}
}

func withAttributeEscaping(enabled bool) RenderOption {
	return func(s *renderState) {
		s.escape = enabled
	}
}

func withSanitizer(fn func(string) string) RenderOption {
	return func(s *renderState) {
		s.sanitize = fn
	}
}

func newRenderState(opts []RenderOption) *renderState {
	state := &renderState{}
	for _, opt := range opts {
		if opt != nil {
			opt(state)
		}
	}
	if state.renderer == nil {
		state.renderer = DefaultRenderer()
	}
	return state
}

func (s *renderState) attributes(attrs *attributes.Attributes) string {
	return attributes.String(attrs, attributes.WithEscaping(s.escape))
}

func (s *renderState) clean(html string) string {
	if s.sanitize == nil || html == "" {
		return html
	}
	return s.sanitize(html)
}

// scope starts a variable map seeded with inherited variables.
func (s *renderState) scope(size int) map[string]any {
	vars := make(map[string]any, size+len(s.inherited))
	maps.Copy(vars, s.inherited)
	return vars
}
