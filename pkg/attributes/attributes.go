// Package attributes serialises HTML attribute maps.
//
// Values follow three rules: nil omits the attribute, an empty string emits
// the bare name (boolean attributes such as `disabled`), anything else emits
// name="value". Entries keep insertion order and are joined by one space.
// Values are not escaped unless WithEscaping is used; templates are expected
// to be the escaping boundary.
package attributes

import (
	"fmt"
	"html"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/ordered"
)

// Attributes maps attribute names to nil, "" or a scalar value.
type Attributes = ordered.Map[any]

// New builds an attribute map from pairs in order.
func New(pairs ...ordered.Pair[any]) *Attributes {
	return ordered.New(pairs...)
}

// Bool returns "" when on is true and nil otherwise, which serialises as a
// bare attribute name or nothing.
func Bool(on bool) any {
	if on {
		return ""
	}
	return nil
}

// Merge copies base and layers overlay on top of it. Keys already present in
// base keep their position; new keys are appended. Neither input is modified.
func Merge(base, overlay *Attributes) *Attributes {
	out := base.Clone()
	overlay.Range(func(name string, value any) bool {
		out.Set(name, value)
		return true
	})
	return out
}

// Option tweaks serialisation.
type Option func(*options)

type options struct {
	escape bool
}

// WithEscaping HTML-escapes attribute values when enabled.
func WithEscaping(enabled bool) Option {
	return func(o *options) {
		o.escape = enabled
	}
}

// String serialises attrs, e.g. {a:1, b:"", c:nil} becomes `a="1" b`.
func String(attrs *Attributes, opts ...Option) string {
	var cfg options
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	parts := make([]string, 0, attrs.Len())
	attrs.Range(func(name string, value any) bool {
		if value == nil {
			return true
		}
		if s, ok := value.(string); ok && s == "" {
			parts = append(parts, name)
			return true
		}
		str := toString(value)
		if cfg.escape {
			str = html.EscapeString(str)
		}
		parts = append(parts, name+`="`+str+`"`)
		return true
	})
	return strings.Join(parts, " ")
}

func toString(value any) string {
	if str, err := cast.ToStringE(value); err == nil {
		return str
	}
	return fmt.Sprint(value)
}
