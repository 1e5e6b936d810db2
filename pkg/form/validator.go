package form

import "github.com/goliatone/go-htmlform/pkg/ordered"

// Data maps field names to submitted or current values in field order. Values
// are "" , a scalar string or number, or a list for multi-valued controls.
type Data = ordered.Map[any]

// NewData builds Data from pairs in order.
func NewData(pairs ...ordered.Pair[any]) *Data {
	return ordered.New(pairs...)
}

// DataFromMap converts a plain map, inserting keys sorted.
func DataFromMap(values map[string]any) *Data {
	return ordered.FromMap(values)
}

// Validator checks one field value. It receives the field's name in the form,
// the submitted value and all submitted values, and returns error messages in
// display order. An empty result means the value is valid.
type Validator interface {
	Validate(fieldName string, fieldValue any, formData *Data) []string
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(fieldName string, fieldValue any, formData *Data) []string

// Validate calls f. A nil function reports no errors.
func (f ValidatorFunc) Validate(fieldName string, fieldValue any, formData *Data) []string {
	if f == nil {
		return nil
	}
	return f(fieldName, fieldValue, formData)
}

// Errors maps field names to their error messages. Fields that passed have
// no entry.
type Errors map[string][]string

// Has reports whether the named field failed validation.
func (e Errors) Has(fieldName string) bool {
	return len(e[fieldName]) > 0
}
