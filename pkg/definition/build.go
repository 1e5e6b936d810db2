package definition

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/validators"
)

// ErrUnknownRule is returned by Build for rule types it cannot map to a
// validator.
var ErrUnknownRule = errors.New("definition: unknown rule")

// Rule types understood by Build.
const (
	RuleMinLength   = "minLength"
	RuleMaxLength   = "maxLength"
	RulePattern     = "pattern"
	RuleEmail       = "email"
	RuleURL         = "url"
	RuleOneOf       = "oneOf"
	RuleEqualsField = "equalsField"
	RuleMinItems    = "minItems"
	RuleMaxItems    = "maxItems"
)

// Build creates a Form holding every field and fieldset of the document in
// document order. Options in opts are applied after the document's engine,
// so a WithTemplateRenderer there wins.
func (d *Document) Build(opts ...form.Option) (*form.Form, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	cfg := form.Config{
		Name:             d.Form.Name,
		Action:           d.Form.Action,
		Method:           d.Form.Method,
		Attributes:       d.Form.Attributes,
		Classes:          d.Form.Classes,
		RequiredText:     d.Form.RequiredText,
		FormTemplate:     d.Form.FormTemplate,
		FieldTemplate:    d.Form.FieldTemplate,
		FieldsetTemplate: d.Form.FieldsetTemplate,
		ErrorsTemplate:   d.Form.ErrorsTemplate,
		InputTemplates:   d.Form.InputTemplates,
		EscapeAttributes: d.Form.EscapeAttributes,
	}
	engine, err := useEngine(d.Form.Engine, &cfg)
	if err != nil {
		return nil, err
	}
	f := form.New(cfg, append([]form.Option{engine}, opts...)...)

	for _, spec := range d.Fields {
		validator, err := buildValidator(spec.Rules)
		if err != nil {
			return nil, fmt.Errorf("definition: field %q: %w", spec.Key, err)
		}
		f.AddField(spec.Key, form.NewField(form.FieldConfig{
			Disabled:        spec.Disabled,
			Readonly:        spec.Readonly,
			Required:        spec.Required,
			RequiredText:    spec.RequiredText,
			Value:           spec.Value,
			Name:            spec.Name,
			Label:           spec.Label,
			Note:            spec.Note,
			InputType:       spec.InputType,
			Options:         spec.Options,
			EmptyOptionText: spec.EmptyOptionText,
			FieldTemplate:   spec.FieldTemplate,
			InputTemplate:   spec.InputTemplate,
			ErrorsTemplate:  spec.ErrorsTemplate,
			FieldAttributes: spec.FieldAttributes,
			InputAttributes: spec.InputAttributes,
			LabelAttributes: spec.LabelAttributes,
			FieldClasses:    spec.FieldClasses,
			InputClasses:    spec.InputClasses,
			LabelClasses:    spec.LabelClasses,
			NoteClasses:     spec.NoteClasses,
			Validator:       validator,
		}))
	}

	for _, spec := range d.Fieldsets {
		f.AddFieldset(spec.Key, form.NewFieldset(form.FieldsetConfig{
			Name:               spec.Name,
			Legend:             spec.Legend,
			Fields:             spec.Fields,
			FieldsetTemplate:   spec.Template,
			FieldsetAttributes: spec.Attributes,
			FieldsetClasses:    spec.Classes,
		}))
	}
	return f, nil
}

func buildValidator(rules []Rule) (form.Validator, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	chain := make([]form.Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := ruleValidator(rule)
		if err != nil {
			return nil, err
		}
		chain = append(chain, v)
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return validators.Chain(chain...), nil
}

func ruleValidator(rule Rule) (form.Validator, error) {
	switch rule.Type {
	case RuleMinLength, RuleMaxLength, RuleMinItems, RuleMaxItems:
		n, err := cast.ToIntE(rule.Value)
		if err != nil {
			return nil, fmt.Errorf("rule %s: value must be an integer: %w", rule.Type, err)
		}
		switch rule.Type {
		case RuleMinLength:
			return validators.MinLength(n, rule.Message), nil
		case RuleMaxLength:
			return validators.MaxLength(n, rule.Message), nil
		case RuleMinItems:
			return validators.MinItems(n, rule.Message), nil
		default:
			return validators.MaxItems(n, rule.Message), nil
		}
	case RulePattern:
		expr, err := cast.ToStringE(rule.Value)
		if err != nil || expr == "" {
			return nil, fmt.Errorf("rule %s: value must be a regular expression", rule.Type)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Type, err)
		}
		return validators.Pattern(re, rule.Message), nil
	case RuleEmail:
		return validators.Email(rule.Message), nil
	case RuleURL:
		return validators.URL(rule.Message), nil
	case RuleOneOf:
		allowed, err := cast.ToStringSliceE(rule.Value)
		if err != nil {
			return nil, fmt.Errorf("rule %s: value must be a list: %w", rule.Type, err)
		}
		return validators.OneOf(allowed, rule.Message), nil
	case RuleEqualsField:
		other := rule.Field
		if other == "" {
			other = cast.ToString(rule.Value)
		}
		if other == "" {
			return nil, fmt.Errorf("rule %s: field is required", rule.Type)
		}
		return validators.EqualsField(other, rule.Message), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRule, rule.Type)
	}
}
