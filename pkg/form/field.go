package form

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-htmlform/pkg/attributes"
	"github.com/goliatone/go-htmlform/pkg/ordered"
)

// FieldConfig describes one form control. Zero values mean "use the default":
// InputType falls back to "text", EmptyOptionText to DefaultEmptyOptionText,
// Name to the key the field is registered under, and empty templates to the
// owning form's templates, then the built-in ones.
type FieldConfig struct {
	Disabled bool
	Readonly bool
	Required bool
	// RequiredText is the required-check message. Empty falls back to the
	// form's RequiredText.
	RequiredText string
	// Value is the configured default: a string, a number or a list for
	// multi-valued controls. ClearData resets the field to it.
	Value any
	Name  string
	Label string
	Note  string
	// InputType selects the input template, e.g. text, select, radio,
	// checkbox, textarea, html, hidden, submit.
	InputType string
	// Options maps choice values to display text for select, radio and
	// checkbox inputs.
	Options         *ordered.Map[string]
	EmptyOptionText string

	FieldTemplate  string
	InputTemplate  string
	ErrorsTemplate string

	FieldAttributes *attributes.Attributes
	InputAttributes *attributes.Attributes
	LabelAttributes *attributes.Attributes

	FieldClasses []string
	InputClasses []string
	LabelClasses []string
	NoteClasses  []string

	Validator Validator
}

// DefaultFieldConfig returns a fresh configuration holding every default.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		InputType:       DefaultInputType,
		EmptyOptionText: DefaultEmptyOptionText,
		Value:           "",
	}
}

// Field is a form control with its configuration, current value and the
// errors produced by the last Validate call. A Field is not safe for
// concurrent use.
type Field struct {
	config FieldConfig
	value  any
	errors []string
}

// NewField merges cfg over DefaultFieldConfig. Lists and maps are copied so
// later changes to cfg do not leak into the field.
func NewField(cfg FieldConfig) *Field {
	merged := DefaultFieldConfig()

	merged.Disabled = cfg.Disabled
	merged.Readonly = cfg.Readonly
	merged.Required = cfg.Required
	merged.RequiredText = cfg.RequiredText
	if cfg.Value != nil {
		merged.Value = cloneValue(cfg.Value)
	}
	merged.Name = cfg.Name
	merged.Label = cfg.Label
	merged.Note = cfg.Note
	merged.InputType = firstNonEmpty(cfg.InputType, merged.InputType)
	if cfg.Options != nil {
		merged.Options = cfg.Options.Clone()
	}
	merged.EmptyOptionText = firstNonEmpty(cfg.EmptyOptionText, merged.EmptyOptionText)

	merged.FieldTemplate = cfg.FieldTemplate
	merged.InputTemplate = cfg.InputTemplate
	merged.ErrorsTemplate = cfg.ErrorsTemplate

	merged.FieldAttributes = cfg.FieldAttributes.Clone()
	merged.InputAttributes = cfg.InputAttributes.Clone()
	merged.LabelAttributes = cfg.LabelAttributes.Clone()

	merged.FieldClasses = slices.Clone(cfg.FieldClasses)
	merged.InputClasses = slices.Clone(cfg.InputClasses)
	merged.LabelClasses = slices.Clone(cfg.LabelClasses)
	merged.NoteClasses = slices.Clone(cfg.NoteClasses)

	merged.Validator = cfg.Validator

	return &Field{
		config: merged,
		value:  cloneValue(merged.Value),
	}
}

// Config returns a copy of the field configuration.
func (f *Field) Config() FieldConfig {
	cfg := f.config
	cfg.Options = f.config.Options.Clone()
	cfg.FieldAttributes = f.config.FieldAttributes.Clone()
	cfg.InputAttributes = f.config.InputAttributes.Clone()
	cfg.LabelAttributes = f.config.LabelAttributes.Clone()
	cfg.FieldClasses = slices.Clone(f.config.FieldClasses)
	cfg.InputClasses = slices.Clone(f.config.InputClasses)
	cfg.LabelClasses = slices.Clone(f.config.LabelClasses)
	cfg.NoteClasses = slices.Clone(f.config.NoteClasses)
	return cfg
}

// InputType returns the configured input type.
func (f *Field) InputType() string {
	return f.config.InputType
}

// Value returns the current value.
func (f *Field) Value() any {
	return cloneValue(f.value)
}

// SetValue replaces the current value.
func (f *Field) SetValue(value any) {
	f.value = cloneValue(value)
}

// Reset restores the configured default value.
func (f *Field) Reset() {
	f.value = cloneValue(f.config.Value)
}

// SetReadonly toggles the readonly flag.
func (f *Field) SetReadonly(readonly bool) {
	f.config.Readonly = readonly
}

// SetDisabled toggles the disabled flag.
func (f *Field) SetDisabled(disabled bool) {
	f.config.Disabled = disabled
}

// Errors returns the messages from the last Validate call.
func (f *Field) Errors() []string {
	return slices.Clone(f.errors)
}

// Render produces the field markup. It reads the field's state and never
// changes it, so repeated calls give identical output.
func (f *Field) Render(opts ...RenderOption) (string, error) {
	state := newRenderState(opts)
	cfg := f.config
	name := firstNonEmpty(cfg.Name, state.defaults.Name)

	values := normalizeValue(f.value)
	selected := make(map[string]struct{}, len(values))
	for _, v := range values {
		selected[v] = struct{}{}
	}

	choices := make([]map[string]any, 0, cfg.Options.Len())
	hasSelectedOption := false
	selectedOptionText := ""
	cfg.Options.Range(func(optionValue, optionText string) bool {
		_, isSelected := selected[optionValue]
		if isSelected && !hasSelectedOption {
			hasSelectedOption = true
			selectedOptionText = optionText
		}
		choices = append(choices, map[string]any{
			"optionValue":    optionValue,
			"optionText":     optionText,
			"optionSelected": isSelected,
		})
		return true
	})

	value := displayValue(f.value, values)
	if cfg.InputType == "html" {
		value = state.clean(value)
	}

	inputAttrs := attributes.Merge(attributes.New(
		ordered.P("disabled", attributes.Bool(cfg.Disabled)),
		ordered.P("readonly", attributes.Bool(cfg.Readonly)),
		ordered.P("required", attributes.Bool(cfg.Required)),
	), cfg.InputAttributes)

	inputVars := state.scope(11)
	inputVars["name"] = name
	inputVars["type"] = cfg.InputType
	inputVars["inputType"] = cfg.InputType
	inputVars["attributes"] = state.attributes(inputAttrs)
	inputVars["classes"] = joinClasses(cfg.InputClasses)
	inputVars["emptyOptionText"] = cfg.EmptyOptionText
	inputVars["hasSelectedOption"] = hasSelectedOption
	inputVars["selectedOptionText"] = selectedOptionText
	inputVars["options"] = choices
	inputVars["value"] = value
	inputVars["values"] = values

	inputTemplate := firstNonEmpty(cfg.InputTemplate, state.defaults.InputTemplate, builtinInputTemplate(cfg.InputType))
	inputHTML, err := state.renderer.RenderString(inputTemplate, inputVars)
	if err != nil {
		return "", fmt.Errorf("form: render input for field %q: %w", name, err)
	}

	errorsTemplate := firstNonEmpty(cfg.ErrorsTemplate, state.defaults.ErrorsTemplate, DefaultErrorsTemplate)
	errorsVars := state.scope(1)
	errorsVars["errors"] = slices.Clone(f.errors)
	errorsHTML, err := state.renderer.RenderString(errorsTemplate, errorsVars)
	if err != nil {
		return "", fmt.Errorf("form: render errors for field %q: %w", name, err)
	}

	fieldVars := state.scope(10 + len(state.variables))
	fieldVars["name"] = name
	fieldVars["fieldAttributes"] = state.attributes(cfg.FieldAttributes)
	fieldVars["fieldClasses"] = joinClasses(cfg.FieldClasses)
	fieldVars["label"] = cfg.Label
	fieldVars["labelAttributes"] = state.attributes(cfg.LabelAttributes)
	fieldVars["labelClasses"] = joinClasses(cfg.LabelClasses)
	fieldVars["note"] = state.clean(cfg.Note)
	fieldVars["noteClasses"] = joinClasses(cfg.NoteClasses)
	fieldVars["inputHtml"] = inputHTML
	fieldVars["errorsHtml"] = errorsHTML
	for key, value := range state.variables {
		fieldVars[key] = value
	}

	fieldTemplate := firstNonEmpty(cfg.FieldTemplate, state.defaults.FieldTemplate, DefaultFieldTemplate)
	out, err := state.renderer.RenderString(fieldTemplate, fieldVars)
	if err != nil {
		return "", fmt.Errorf("form: render field %q: %w", name, err)
	}
	return out, nil
}

// Validate checks fieldValue, stores the resulting errors and value on the
// field, and returns the errors. An empty (non-nil) slice means valid.
//
// The required-check fails for nil or "" when the field is required and
// neither disabled nor readonly; lists, even empty ones, always pass it. A
// falsy fieldValue keeps the previous value so action-only controls such as
// submit buttons keep their caption.
func (f *Field) Validate(fieldName string, fieldValue any, formData *Data) []string {
	return f.validate(fieldName, fieldValue, formData, "")
}

func (f *Field) validate(fieldName string, fieldValue any, formData *Data, fallbackRequiredText string) []string {
	errs := make([]string, 0)

	cfg := f.config
	if cfg.Required && !cfg.Disabled && !cfg.Readonly && isMissing(fieldValue) {
		errs = append(errs, firstNonEmpty(cfg.RequiredText, fallbackRequiredText, DefaultRequiredText))
	}

	if cfg.Validator != nil {
		errs = append(errs, cfg.Validator.Validate(fieldName, fieldValue, formData)...)
	}

	f.errors = slices.Clone(errs)
	if !isFalsy(fieldValue) {
		f.value = cloneValue(fieldValue)
	}
	return errs
}
