// Package definition reads declarative form documents written in YAML or JSON
// and builds *form.Form values from them.
//
//	form:
//	  name: signup
//	  action: /signup
//	  engine: pongo
//	fields:
//	  - key: email
//	    inputType: email
//	    required: true
//	    rules:
//	      - type: email
//	fieldsets:
//	  - key: account
//	    fields: [email]
package definition

import (
	"github.com/goliatone/go-htmlform/pkg/ordered"
)

// Document is the decoded form definition.
type Document struct {
	Form      FormSpec       `yaml:"form" json:"form"`
	Fields    []FieldSpec    `yaml:"fields" json:"fields"`
	Fieldsets []FieldsetSpec `yaml:"fieldsets,omitempty" json:"fieldsets,omitempty"`
}

// FormSpec maps onto form.Config. Engine selects the template language,
// mustache (the default) or pongo; templates the document leaves empty fall
// back to that engine's built-ins.
type FormSpec struct {
	Name             string            `yaml:"name" json:"name"`
	Action           string            `yaml:"action" json:"action"`
	Method           string            `yaml:"method,omitempty" json:"method,omitempty"`
	Attributes       *ordered.Map[any] `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Classes          []string          `yaml:"classes,omitempty" json:"classes,omitempty"`
	RequiredText     string            `yaml:"requiredText,omitempty" json:"requiredText,omitempty"`
	FormTemplate     string            `yaml:"formTemplate,omitempty" json:"formTemplate,omitempty"`
	FieldTemplate    string            `yaml:"fieldTemplate,omitempty" json:"fieldTemplate,omitempty"`
	FieldsetTemplate string            `yaml:"fieldsetTemplate,omitempty" json:"fieldsetTemplate,omitempty"`
	ErrorsTemplate   string            `yaml:"errorsTemplate,omitempty" json:"errorsTemplate,omitempty"`
	InputTemplates   map[string]string `yaml:"inputTemplates,omitempty" json:"inputTemplates,omitempty"`
	EscapeAttributes bool              `yaml:"escapeAttributes,omitempty" json:"escapeAttributes,omitempty"`
	Engine           string            `yaml:"engine,omitempty" json:"engine,omitempty"`
}

// FieldSpec maps onto form.FieldConfig. Key is the field's name in the form.
type FieldSpec struct {
	Key             string               `yaml:"key" json:"key"`
	Name            string               `yaml:"name,omitempty" json:"name,omitempty"`
	InputType       string               `yaml:"inputType,omitempty" json:"inputType,omitempty"`
	Label           string               `yaml:"label,omitempty" json:"label,omitempty"`
	Note            string               `yaml:"note,omitempty" json:"note,omitempty"`
	Value           any                  `yaml:"value,omitempty" json:"value,omitempty"`
	Required        bool                 `yaml:"required,omitempty" json:"required,omitempty"`
	Disabled        bool                 `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Readonly        bool                 `yaml:"readonly,omitempty" json:"readonly,omitempty"`
	RequiredText    string               `yaml:"requiredText,omitempty" json:"requiredText,omitempty"`
	Options         *ordered.Map[string] `yaml:"options,omitempty" json:"options,omitempty"`
	EmptyOptionText string               `yaml:"emptyOptionText,omitempty" json:"emptyOptionText,omitempty"`
	FieldTemplate   string               `yaml:"fieldTemplate,omitempty" json:"fieldTemplate,omitempty"`
	InputTemplate   string               `yaml:"inputTemplate,omitempty" json:"inputTemplate,omitempty"`
	ErrorsTemplate  string               `yaml:"errorsTemplate,omitempty" json:"errorsTemplate,omitempty"`
	FieldAttributes *ordered.Map[any]    `yaml:"fieldAttributes,omitempty" json:"fieldAttributes,omitempty"`
	InputAttributes *ordered.Map[any]    `yaml:"inputAttributes,omitempty" json:"inputAttributes,omitempty"`
	LabelAttributes *ordered.Map[any]    `yaml:"labelAttributes,omitempty" json:"labelAttributes,omitempty"`
	FieldClasses    []string             `yaml:"fieldClasses,omitempty" json:"fieldClasses,omitempty"`
	InputClasses    []string             `yaml:"inputClasses,omitempty" json:"inputClasses,omitempty"`
	LabelClasses    []string             `yaml:"labelClasses,omitempty" json:"labelClasses,omitempty"`
	NoteClasses     []string             `yaml:"noteClasses,omitempty" json:"noteClasses,omitempty"`
	Rules           []Rule               `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Rule names a validator from pkg/validators. Value carries the rule
// argument (a length, a pattern, a list of choices), Field the other field
// for equalsField and Message overrides the default message.
type Rule struct {
	Type    string `yaml:"type" json:"type"`
	Value   any    `yaml:"value,omitempty" json:"value,omitempty"`
	Field   string `yaml:"field,omitempty" json:"field,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// FieldsetSpec maps onto form.FieldsetConfig.
type FieldsetSpec struct {
	Key        string            `yaml:"key" json:"key"`
	Name       string            `yaml:"name,omitempty" json:"name,omitempty"`
	Legend     string            `yaml:"legend,omitempty" json:"legend,omitempty"`
	Fields     []string          `yaml:"fields" json:"fields"`
	Attributes *ordered.Map[any] `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Classes    []string          `yaml:"classes,omitempty" json:"classes,omitempty"`
	Template   string            `yaml:"template,omitempty" json:"template,omitempty"`
}
