package htmlform

import "github.com/goliatone/go-htmlform/pkg/form"

// DefaultTemplates returns the built-in template set, a starting point for
// themes that only override some partials.
func DefaultTemplates() form.TemplateSet {
	return form.TemplateSet{
		Form:     form.DefaultFormTemplate,
		Field:    form.DefaultFieldTemplate,
		Fieldset: form.DefaultFieldsetTemplate,
		Errors:   form.DefaultErrorsTemplate,
		Inputs:   form.DefaultInputTemplates(),
	}
}
