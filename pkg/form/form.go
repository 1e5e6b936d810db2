package form

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-htmlform/pkg/attributes"
	"github.com/goliatone/go-htmlform/pkg/ordered"
	"github.com/goliatone/go-htmlform/pkg/render/template"
)

// Config holds the form-level settings and the fallbacks shared by every
// field and fieldset. Empty values fall back to the package defaults.
type Config struct {
	Name       string
	Action     string
	Method     string
	Attributes *attributes.Attributes
	Classes    []string

	// RequiredText is the required-check message for fields that do not set
	// their own.
	RequiredText string

	FormTemplate     string
	ErrorsTemplate   string
	FieldTemplate    string
	FieldsetTemplate string
	// InputTemplates overlay the built-in templates keyed by input type.
	InputTemplates map[string]string

	// EscapeAttributes HTML-escapes serialised attribute values.
	EscapeAttributes bool
}

// DefaultConfig returns a fresh configuration holding every default.
func DefaultConfig() Config {
	return Config{
		Method:         DefaultMethod,
		RequiredText:   DefaultRequiredText,
		FormTemplate:   DefaultFormTemplate,
		ErrorsTemplate: DefaultErrorsTemplate,
		InputTemplates: DefaultInputTemplates(),
	}
}

// Option customises a Form.
type Option func(*Form)

// WithTemplateRenderer swaps the template engine used for the form and its
// children.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(f *Form) {
		if renderer != nil {
			f.renderer = renderer
		}
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSanitizer runs field notes and html-type values through policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(f *Form) {
		if policy == nil {
			f.sanitize = nil
			return
		}
		f.sanitize = policy.Sanitize
	}
}

// Form owns ordered fields and fieldsets and assembles the final markup.
// A Form is not safe for concurrent use; build one per request or session.
type Form struct {
	config    Config
	fields    *ordered.Map[*Field]
	fieldsets *ordered.Map[*Fieldset]
	renderer  template.TemplateRenderer
	logger    *slog.Logger
	sanitize  func(string) string
}

// New merges cfg over DefaultConfig and applies options.
func New(cfg Config, opts ...Option) *Form {
	merged := DefaultConfig()
	merged.Name = cfg.Name
	merged.Action = cfg.Action
	merged.Method = firstNonEmpty(cfg.Method, merged.Method)
	merged.Attributes = cfg.Attributes.Clone()
	merged.Classes = slices.Clone(cfg.Classes)
	merged.RequiredText = firstNonEmpty(cfg.RequiredText, merged.RequiredText)
	merged.FormTemplate = firstNonEmpty(cfg.FormTemplate, merged.FormTemplate)
	merged.ErrorsTemplate = firstNonEmpty(cfg.ErrorsTemplate, merged.ErrorsTemplate)
	merged.FieldTemplate = cfg.FieldTemplate
	merged.FieldsetTemplate = cfg.FieldsetTemplate
	maps.Copy(merged.InputTemplates, cfg.InputTemplates)
	merged.EscapeAttributes = cfg.EscapeAttributes

	f := &Form{
		config:    merged,
		fields:    ordered.New[*Field](),
		fieldsets: ordered.New[*Fieldset](),
		renderer:  DefaultRenderer(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Config returns a copy of the form configuration.
func (f *Form) Config() Config {
	cfg := f.config
	cfg.Attributes = f.config.Attributes.Clone()
	cfg.Classes = slices.Clone(f.config.Classes)
	cfg.InputTemplates = maps.Clone(f.config.InputTemplates)
	return cfg
}

// Name returns the form name.
func (f *Form) Name() string {
	return f.config.Name
}

// SetAction changes the submission URL.
func (f *Form) SetAction(action string) {
	f.config.Action = action
}

// SetAttribute sets a form attribute. Pass "" for a bare attribute and nil to
// suppress it.
func (f *Form) SetAttribute(name string, value any) {
	if f.config.Attributes == nil {
		f.config.Attributes = attributes.New()
	}
	f.config.Attributes.Set(name, value)
}

// SetInputTemplate registers the input template used for inputType.
func (f *Form) SetInputTemplate(inputType, tmpl string) {
	if f.config.InputTemplates == nil {
		f.config.InputTemplates = make(map[string]string)
	}
	f.config.InputTemplates[inputType] = tmpl
}

// ApplyTemplates overlays the non-empty templates in set onto the form.
func (f *Form) ApplyTemplates(set TemplateSet) {
	if set.Form != "" {
		f.config.FormTemplate = set.Form
	}
	if set.Field != "" {
		f.config.FieldTemplate = set.Field
	}
	if set.Fieldset != "" {
		f.config.FieldsetTemplate = set.Fieldset
	}
	if set.Errors != "" {
		f.config.ErrorsTemplate = set.Errors
	}
	for inputType, tmpl := range set.Inputs {
		if tmpl != "" {
			f.SetInputTemplate(inputType, tmpl)
		}
	}
}

// AddField registers field under key. Re-adding a key replaces the field and
// keeps its position.
func (f *Form) AddField(key string, field *Field) *Form {
	if field != nil {
		f.fields.Set(key, field)
	}
	return f
}

// AddFieldset registers fieldset under key. Once any fieldset exists only
// fields listed by a fieldset are rendered.
func (f *Form) AddFieldset(key string, fieldset *Fieldset) *Form {
	if fieldset != nil {
		f.fieldsets.Set(key, fieldset)
	}
	return f
}

// RemoveField drops the field registered under key.
func (f *Form) RemoveField(key string) bool {
	return f.fields.Delete(key)
}

// Field returns the field registered under key.
func (f *Form) Field(key string) (*Field, bool) {
	return f.fields.Get(key)
}

// Fieldset returns the fieldset registered under key.
func (f *Form) Fieldset(key string) (*Fieldset, bool) {
	return f.fieldsets.Get(key)
}

// FieldNames returns field keys in insertion order.
func (f *Form) FieldNames() []string {
	return f.fields.Keys()
}

// FieldsetNames returns fieldset keys in insertion order.
func (f *Form) FieldsetNames() []string {
	return f.fieldsets.Keys()
}

// GetData snapshots every field value in field order.
func (f *Form) GetData() *Data {
	data := NewData()
	f.fields.Range(func(key string, field *Field) bool {
		data.Set(key, field.Value())
		return true
	})
	return data
}

// SetData overwrites the values of known fields. Unknown keys are ignored.
func (f *Form) SetData(data *Data) {
	data.Range(func(key string, value any) bool {
		if field, ok := f.fields.Get(key); ok {
			field.SetValue(value)
		}
		return true
	})
}

// ClearData resets every field to its configured default value.
func (f *Form) ClearData() {
	f.fields.Range(func(_ string, field *Field) bool {
		field.Reset()
		return true
	})
}

// Render renders every field, groups them into fieldsets when any exist and
// wraps the result in the form template. vars are overlaid on the form
// template and inherited, at the lowest priority, by the field, input, errors
// and fieldset templates.
func (f *Form) Render(vars map[string]any) (string, error) {
	common := []RenderOption{
		WithRenderer(f.renderer),
		withInherited(vars),
		withAttributeEscaping(f.config.EscapeAttributes),
		withSanitizer(f.sanitize),
	}

	htmlByField := make(map[string]string, f.fields.Len())
	rendered := make([]string, 0, f.fields.Len())
	var renderErr error
	f.fields.Range(func(key string, field *Field) bool {
		opts := append(slices.Clone(common), WithDefaults(f.fieldDefaults(key, field)))
		html, err := field.Render(opts...)
		if err != nil {
			renderErr = err
			return false
		}
		htmlByField[key] = html
		rendered = append(rendered, html)
		return true
	})
	if renderErr != nil {
		return "", renderErr
	}

	var body string
	if f.fieldsets.Len() == 0 {
		body = strings.Join(rendered, "\n")
	} else {
		var sb strings.Builder
		f.fieldsets.Range(func(key string, fieldset *Fieldset) bool {
			members := fieldset.FieldNames()
			parts := make([]string, 0, len(members))
			for _, name := range members {
				parts = append(parts, htmlByField[name])
			}
			opts := append(slices.Clone(common), WithDefaults(Defaults{
				Name:             key,
				FieldsetTemplate: f.config.FieldsetTemplate,
			}))
			html, err := fieldset.Render(strings.Join(parts, "\n"), opts...)
			if err != nil {
				renderErr = err
				return false
			}
			sb.WriteString(html)
			return true
		})
		if renderErr != nil {
			return "", renderErr
		}
		body = sb.String()
	}

	formVars := map[string]any{
		"name":       f.config.Name,
		"method":     f.config.Method,
		"action":     f.config.Action,
		"attributes": attributes.String(f.config.Attributes, attributes.WithEscaping(f.config.EscapeAttributes)),
		"classes":    joinClasses(f.config.Classes),
		"formHtml":   body,
	}
	maps.Copy(formVars, vars)

	out, err := f.renderer.RenderString(f.config.FormTemplate, formVars)
	if err != nil {
		return "", fmt.Errorf("form: render form %q: %w", f.config.Name, err)
	}
	f.logger.Debug("form rendered",
		slog.String("form", f.config.Name),
		slog.Int("fields", f.fields.Len()),
		slog.Int("fieldsets", f.fieldsets.Len()),
	)
	return out, nil
}

func (f *Form) fieldDefaults(key string, field *Field) Defaults {
	return Defaults{
		Name:           key,
		FieldTemplate:  f.config.FieldTemplate,
		InputTemplate:  f.inputTemplate(field.InputType()),
		ErrorsTemplate: f.config.ErrorsTemplate,
	}
}

func (f *Form) inputTemplate(inputType string) string {
	if tmpl := f.config.InputTemplates[inputType]; tmpl != "" {
		return tmpl
	}
	if tmpl := f.config.InputTemplates[GenericInputTemplate]; tmpl != "" {
		return tmpl
	}
	return builtinInputTemplate(inputType)
}

// Validate runs every field's checks against data, or against GetData when
// data is nil, and stores the value and errors on each field. It returns nil
// when every field passed.
func (f *Form) Validate(data *Data) Errors {
	if data == nil {
		data = f.GetData()
	}

	var errs Errors
	f.fields.Range(func(key string, field *Field) bool {
		fieldErrors := field.validate(key, data.Value(key), data, f.config.RequiredText)
		if len(fieldErrors) > 0 {
			if errs == nil {
				errs = make(Errors)
			}
			errs[key] = fieldErrors
		}
		return true
	})

	f.logger.Debug("form validated",
		slog.String("form", f.config.Name),
		slog.Bool("valid", errs == nil),
		slog.Int("invalid_fields", len(errs)),
	)
	return errs
}
