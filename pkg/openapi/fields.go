package openapi

import (
	"encoding/json"
	"slices"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/definition"
	"github.com/goliatone/go-htmlform/pkg/ordered"
)

const (
	// orderExtension sorts properties ahead of the alphabetical default.
	orderExtension = "x-order"
	// inputExtension overrides the derived input type.
	inputExtension = "x-htmlform-input"
)

var formatInputTypes = map[string]string{
	"email":     "email",
	"password":  "password",
	"date":      "date",
	"date-time": "datetime-local",
	"time":      "time",
	"uri":       "url",
	"url":       "url",
	"binary":    "file",
}

type property struct {
	name   string
	schema *openapi3.Schema
	order  int
	hasPos bool
}

func fieldsFromSchema(schema *openapi3.Schema) []definition.FieldSpec {
	props := make([]property, 0, len(schema.Properties))
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		p := property{name: name, schema: ref.Value}
		if raw, ok := ref.Value.Extensions[orderExtension]; ok {
			if n, err := cast.ToIntE(extensionValue(raw)); err == nil {
				p.order, p.hasPos = n, true
			}
		}
		props = append(props, p)
	}
	sort.SliceStable(props, func(a, b int) bool {
		pa, pb := props[a], props[b]
		if pa.hasPos != pb.hasPos {
			return pa.hasPos
		}
		if pa.hasPos && pa.order != pb.order {
			return pa.order < pb.order
		}
		return pa.name < pb.name
	})

	fields := make([]definition.FieldSpec, 0, len(props))
	for _, p := range props {
		field, ok := fieldFromProperty(p.name, p.schema, slices.Contains(schema.Required, p.name))
		if ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func fieldFromProperty(name string, schema *openapi3.Schema, required bool) (definition.FieldSpec, bool) {
	field := definition.FieldSpec{
		Key:      name,
		Label:    schema.Title,
		Note:     schema.Description,
		Required: required,
		Readonly: schema.ReadOnly,
		Value:    schema.Default,
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}

	switch schemaType(schema) {
	case openapi3.TypeObject:
		return field, false
	case openapi3.TypeBoolean:
		field.InputType = "checkbox"
		field.Options = ordered.New(ordered.P("true", field.Label))
		if b, ok := schema.Default.(bool); ok {
			field.Value = ""
			if b {
				field.Value = "true"
			}
		}
	case openapi3.TypeArray:
		field.InputType = "checkbox"
		if schema.Items != nil && schema.Items.Value != nil && len(schema.Items.Value.Enum) > 0 {
			field.Options = enumOptions(schema.Items.Value.Enum)
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleOneOf, Value: field.Options.Keys()})
		} else {
			field.InputType = "text"
		}
		if schema.MinItems > 0 {
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleMinItems, Value: int(schema.MinItems)})
		}
		if schema.MaxItems != nil {
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleMaxItems, Value: int(*schema.MaxItems)})
		}
	case openapi3.TypeInteger, openapi3.TypeNumber:
		field.InputType = "number"
	default:
		field.InputType = "text"
		if inputType, ok := formatInputTypes[schema.Format]; ok {
			field.InputType = inputType
		}
		switch schema.Format {
		case "email":
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleEmail})
		case "uri", "url":
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleURL})
		}
		if schema.MinLength > 0 {
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleMinLength, Value: int(schema.MinLength)})
		}
		if schema.MaxLength != nil {
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleMaxLength, Value: int(*schema.MaxLength)})
			field.InputAttributes = ordered.New(ordered.P[any]("maxlength", int(*schema.MaxLength)))
		}
		if schema.Pattern != "" {
			field.Rules = append(field.Rules, definition.Rule{Type: definition.RulePattern, Value: schema.Pattern})
		}
	}

	if len(schema.Enum) > 0 && schemaType(schema) != openapi3.TypeBoolean {
		field.InputType = "select"
		field.Options = enumOptions(schema.Enum)
		field.Rules = append(field.Rules, definition.Rule{Type: definition.RuleOneOf, Value: field.Options.Keys()})
	}

	if raw, ok := schema.Extensions[inputExtension]; ok {
		if inputType := cast.ToString(extensionValue(raw)); inputType != "" {
			field.InputType = inputType
		}
	}
	return field, true
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	types := schema.Type.Slice()
	for _, t := range types {
		if t != openapi3.TypeNull {
			return t
		}
	}
	return ""
}

func enumOptions(values []any) *ordered.Map[string] {
	options := ordered.New[string]()
	for _, value := range values {
		if value == nil {
			continue
		}
		key := cast.ToString(value)
		options.Set(key, key)
	}
	return options
}

// extensionValue decodes extensions that arrive as raw JSON.
func extensionValue(raw any) any {
	if msg, ok := raw.(json.RawMessage); ok {
		var out any
		if err := json.Unmarshal(msg, &out); err == nil {
			return out
		}
	}
	return raw
}
