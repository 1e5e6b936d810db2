package server

import (
	"net/url"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// Decode maps submitted values onto the form's fields in field order. Each
// field is read under its configured name, or its key when it has none. A
// key submitted more than once, or a checkbox group with several options,
// becomes a list; an absent key becomes nil.
func Decode(f *form.Form, values url.Values) *form.Data {
	data := form.NewData()
	for _, key := range f.FieldNames() {
		field, _ := f.Field(key)
		cfg := field.Config()

		name := cfg.Name
		if name == "" {
			name = key
		}

		submitted, ok := values[name]
		if !ok {
			// PHP-style array names, e.g. "tags[]".
			submitted, ok = values[name+"[]"]
		}
		switch {
		case !ok:
			data.Set(key, nil)
		case len(submitted) > 1 || isGroup(cfg):
			data.Set(key, append([]string(nil), submitted...))
		default:
			data.Set(key, submitted[0])
		}
	}
	return data
}

func isGroup(cfg form.FieldConfig) bool {
	return cfg.InputType == "checkbox" && cfg.Options != nil && cfg.Options.Len() > 1
}
