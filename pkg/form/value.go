package form

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

// normalizeValue turns a field value into the ordered list of strings used
// for "is this choice selected" checks. nil and "" yield an empty list, a
// scalar yields one element, and lists are cast element-wise.
func normalizeValue(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, toString(item))
		}
		return out
	}

	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, toString(rv.Index(i).Interface()))
		}
		return out
	}
	return []string{toString(value)}
}

// displayValue is the `value` template variable: the scalar as a string, or
// the list joined by commas.
func displayValue(value any, normalized []string) string {
	if isList(value) {
		return strings.Join(normalized, ",")
	}
	if len(normalized) == 0 {
		return ""
	}
	return normalized[0]
}

// isMissing reports whether a submitted value fails the required-check. Lists
// are never missing, even when empty.
func isMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// isFalsy mirrors loose truthiness for scalars: nil, "", false and numeric
// zero. Lists, empty or not, are truthy.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isList(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	return (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8
}

// cloneValue copies list values so callers cannot mutate stored state.
func cloneValue(value any) any {
	switch v := value.(type) {
	case []string:
		return slices.Clone(v)
	case []any:
		return slices.Clone(v)
	default:
		return value
	}
}

func toString(value any) string {
	if str, err := cast.ToStringE(value); err == nil {
		return str
	}
	return fmt.Sprint(value)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func joinClasses(classes []string) string {
	return strings.Join(classes, " ")
}

// StringValues returns the value as the list of strings the templates see:
// empty for nil and "", one element for scalars, one per item for lists.
func StringValues(value any) []string {
	return normalizeValue(value)
}
