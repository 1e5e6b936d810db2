package pongo

import "maps"

// Built-in form templates written for pongo2. They take the same variables as
// the mustache defaults in pkg/form and produce the same markup.
const (
	FormTemplate = `<form name="{{ name }}" method="{{ method }}" action="{{ action|safe }}" ` +
		`{{ attributes|safe }} class="{{ classes|safe }}">{{ formHtml|safe }}</form>`

	FieldTemplate = `<div {{ fieldAttributes|safe }} class="{{ fieldClasses|safe }}">` +
		`<label for="{{ name|safe }}" {{ labelAttributes|safe }} class="{{ labelClasses|safe }}">{{ label }}</label>` +
		`{{ inputHtml|safe }}` +
		`{% if note %}<div class="{{ noteClasses|safe }}">{{ note|safe }}</div>{% endif %}` +
		`{{ errorsHtml|safe }}` +
		`</div>`

	FieldsetTemplate = `<fieldset name="{{ name }}" {{ fieldsetAttributes|safe }} class="{{ fieldsetClasses|safe }}">` +
		`<legend>{{ legend }}</legend>` +
		`{{ fieldsHtml|safe }}` +
		`</fieldset>`

	ErrorsTemplate = `<div class="errors">{% for message in errors %}<ul><li>{{ message }}</li></ul>{% endfor %}</div>`
)

const choiceInputTemplate = `{% for option in options %}` +
	`<input name="{{ name }}" type="{{ type }}" value="{{ option.optionValue }}" ` +
	`{{ attributes|safe }} {% if option.optionSelected %}checked{% endif %} ` +
	`class="{{ classes|safe }}" />{{ option.optionText }}` +
	`{% endfor %}`

var inputTemplates = map[string]string{
	// generic fallback, keyed like form.GenericInputTemplate
	"input": `<input name="{{ name }}" type="{{ type }}" value="{{ value }}" ` +
		`{{ attributes|safe }} class="{{ classes|safe }}" />`,

	"checkbox": choiceInputTemplate,

	"html": `{{ value|safe }}`,

	"radio": choiceInputTemplate,

	"select": `<select name="{{ name }}" {{ attributes|safe }} class="{{ classes|safe }}"> ` +
		`<option value="" {% if not hasSelectedOption %}selected{% endif %}>` +
		`{{ emptyOptionText }}</option>` +
		`{% for option in options %}` +
		`  <option value="{{ option.optionValue }}"` +
		`    {% if option.optionSelected %}selected{% endif %}>{{ option.optionText }}</option>` +
		`{% endfor %}` +
		`</select>`,

	"textarea": `<textarea name="{{ name }}" {{ attributes|safe }} ` +
		`class="{{ classes|safe }}">{{ value|safe }}</textarea>`,
}

// InputTemplates returns a fresh copy of the built-in input templates keyed
// by input type.
func InputTemplates() map[string]string {
	return maps.Clone(inputTemplates)
}
