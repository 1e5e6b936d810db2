package form

import "maps"

// Built-in configuration defaults.
const (
	DefaultEmptyOptionText = "Please select an option"
	DefaultInputType       = "text"
	DefaultMethod          = "POST"
	DefaultRequiredText    = "This field is required."

	// GenericInputTemplate keys the input template used when no template is
	// registered for a field's input type.
	GenericInputTemplate = "input"
)

// DefaultFieldTemplate wraps a label, the rendered input, an optional note and
// the rendered errors.
const DefaultFieldTemplate = `<div {{{fieldAttributes}}} class="{{{fieldClasses}}}">` +
	`<label for="{{{name}}}" {{{labelAttributes}}} class="{{{labelClasses}}}">{{label}}</label>` +
	`{{{inputHtml}}}` +
	`{{#note}}<div class="{{{noteClasses}}}">{{{note}}}</div>{{/note}}` +
	`{{{errorsHtml}}}` +
	`</div>`

// DefaultFieldsetTemplate renders a <fieldset> around pre-rendered fieldsHtml.
const DefaultFieldsetTemplate = `<fieldset name="{{name}}" {{{fieldsetAttributes}}} class="{{{fieldsetClasses}}}">` +
	`<legend>{{legend}}</legend>` +
	`{{{fieldsHtml}}}` +
	`</fieldset>`

// DefaultFormTemplate renders the enclosing <form> around formHtml.
const DefaultFormTemplate = `<form name="{{name}}" method="{{method}}" action="{{{action}}}" ` +
	`{{{attributes}}} class="{{{classes}}}">{{{formHtml}}}</form>`

// DefaultErrorsTemplate renders a field's error list.
const DefaultErrorsTemplate = `<div class="errors">{{#errors}}<ul><li>{{.}}</li></ul>{{/errors}}</div>`

const choiceInputTemplate = `{{#options}}` +
	`<input name="{{name}}" type="{{type}}" value="{{optionValue}}" ` +
	`{{{attributes}}} {{#optionSelected}}checked{{/optionSelected}} ` +
	`class="{{{classes}}}" />{{optionText}}` +
	`{{/options}}`

var defaultInputTemplates = map[string]string{
	GenericInputTemplate: `<input name="{{name}}" type="{{type}}" value="{{value}}" ` +
		`{{{attributes}}} class="{{{classes}}}" />`,

	"checkbox": choiceInputTemplate,

	"html": `{{{value}}}`,

	"radio": choiceInputTemplate,

	"select": `<select name="{{name}}" {{{attributes}}} class="{{{classes}}}"> ` +
		`<option value="" {{^hasSelectedOption}}selected{{/hasSelectedOption}}>` +
		`{{emptyOptionText}}</option>` +
		`{{#options}}` +
		`  <option value="{{optionValue}}"` +
		`    {{#optionSelected}}selected{{/optionSelected}}>{{optionText}}</option>` +
		`{{/options}}` +
		`</select>`,

	"textarea": `<textarea name="{{name}}" {{{attributes}}} ` +
		`class="{{{classes}}}">{{{value}}}</textarea>`,
}

// DefaultInputTemplates returns a fresh copy of the built-in input templates
// keyed by input type. Unknown types fall back to GenericInputTemplate.
func DefaultInputTemplates() map[string]string {
	return maps.Clone(defaultInputTemplates)
}

// TemplateSet groups template overrides applied to a Form in one call. Empty
// entries leave the current template untouched.
type TemplateSet struct {
	Form     string
	Field    string
	Fieldset string
	Errors   string
	Inputs   map[string]string
}

func builtinInputTemplate(inputType string) string {
	if tpl, ok := defaultInputTemplates[inputType]; ok {
		return tpl
	}
	return defaultInputTemplates[GenericInputTemplate]
}
