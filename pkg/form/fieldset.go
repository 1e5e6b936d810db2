package form

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-htmlform/pkg/attributes"
)

// FieldsetConfig groups field names for rendering. A fieldset never holds
// Field values; the owning Form looks members up by name.
type FieldsetConfig struct {
	Name               string
	Legend             string
	Fields             []string
	FieldsetTemplate   string
	FieldsetAttributes *attributes.Attributes
	FieldsetClasses    []string
}

// Fieldset is a named, ordered grouping of field names.
type Fieldset struct {
	config FieldsetConfig
}

// NewFieldset copies cfg into a new Fieldset.
func NewFieldset(cfg FieldsetConfig) *Fieldset {
	return &Fieldset{config: FieldsetConfig{
		Name:               cfg.Name,
		Legend:             cfg.Legend,
		Fields:             slices.Clone(cfg.Fields),
		FieldsetTemplate:   cfg.FieldsetTemplate,
		FieldsetAttributes: cfg.FieldsetAttributes.Clone(),
		FieldsetClasses:    slices.Clone(cfg.FieldsetClasses),
	}}
}

// FieldNames returns the member field names in order.
func (fs *Fieldset) FieldNames() []string {
	return slices.Clone(fs.config.Fields)
}

// Config returns a copy of the fieldset configuration.
func (fs *Fieldset) Config() FieldsetConfig {
	cfg := fs.config
	cfg.Fields = slices.Clone(fs.config.Fields)
	cfg.FieldsetAttributes = fs.config.FieldsetAttributes.Clone()
	cfg.FieldsetClasses = slices.Clone(fs.config.FieldsetClasses)
	return cfg
}

// Render wraps fieldsHTML, the already rendered member markup, in the
// fieldset template.
func (fs *Fieldset) Render(fieldsHTML string, opts ...RenderOption) (string, error) {
	state := newRenderState(opts)
	cfg := fs.config
	name := firstNonEmpty(cfg.Name, state.defaults.Name)

	vars := state.scope(5 + len(state.variables))
	vars["name"] = name
	vars["legend"] = cfg.Legend
	vars["fieldsetAttributes"] = state.attributes(cfg.FieldsetAttributes)
	vars["fieldsetClasses"] = joinClasses(cfg.FieldsetClasses)
	vars["fieldsHtml"] = fieldsHTML
	for key, value := range state.variables {
		vars[key] = value
	}

	tmpl := firstNonEmpty(cfg.FieldsetTemplate, state.defaults.FieldsetTemplate, DefaultFieldsetTemplate)
	out, err := state.renderer.RenderString(tmpl, vars)
	if err != nil {
		return "", fmt.Errorf("form: render fieldset %q: %w", name, err)
	}
	return out, nil
}
