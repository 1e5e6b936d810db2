// Package validators provides reusable form.Validator implementations. Every
// validator ignores missing values (nil or the empty string) so the built-in
// required-check stays the only source of "missing" errors.
package validators

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"slices"

	"github.com/spf13/cast"

	"github.com/goliatone/go-htmlform/pkg/form"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MinLength fails strings shorter than n runes.
func MinLength(n int, msg string) form.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at least %d characters.", n)
	}
	return eachString(func(s string) bool {
		return len([]rune(s)) >= n
	}, msg)
}

// MaxLength fails strings longer than n runes.
func MaxLength(n int, msg string) form.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must be at most %d characters.", n)
	}
	return eachString(func(s string) bool {
		return len([]rune(s)) <= n
	}, msg)
}

// Pattern fails strings that do not match re.
func Pattern(re *regexp.Regexp, msg string) form.Validator {
	if msg == "" {
		msg = "Invalid format."
	}
	return eachString(re.MatchString, msg)
}

// Email fails strings that do not look like an email address.
func Email(msg string) form.Validator {
	if msg == "" {
		msg = "Invalid email address."
	}
	return eachString(emailPattern.MatchString, msg)
}

// URL fails strings that are not absolute URLs.
func URL(msg string) form.Validator {
	if msg == "" {
		msg = "Invalid URL."
	}
	return eachString(func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	}, msg)
}

// OneOf fails values outside allowed. Lists are checked element by element.
func OneOf(allowed []string, msg string) form.Validator {
	if msg == "" {
		msg = "Invalid choice."
	}
	allowed = slices.Clone(allowed)
	return eachString(func(s string) bool {
		return slices.Contains(allowed, s)
	}, msg)
}

// EqualsField fails when the value differs from the submitted value of
// another field, e.g. a password confirmation.
func EqualsField(other, msg string) form.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Must match %s.", other)
	}
	return form.ValidatorFunc(func(_ string, value any, data *form.Data) []string {
		if isEmpty(value) {
			return nil
		}
		if toString(value) != toString(data.Value(other)) {
			return []string{msg}
		}
		return nil
	})
}

// MinItems fails multi-valued submissions with fewer than n entries. A
// non-empty scalar counts as one entry. A missing value (nil or "") is left
// to the required-check, but a submitted empty list counts as zero entries.
func MinItems(n int, msg string) form.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Select at least %d options.", n)
	}
	return form.ValidatorFunc(func(_ string, value any, _ *form.Data) []string {
		if isMissing(value) {
			return nil
		}
		if count(value) < n {
			return []string{msg}
		}
		return nil
	})
}

// MaxItems fails multi-valued submissions with more than n entries.
func MaxItems(n int, msg string) form.Validator {
	if msg == "" {
		msg = fmt.Sprintf("Select at most %d options.", n)
	}
	return form.ValidatorFunc(func(_ string, value any, _ *form.Data) []string {
		if count(value) > n {
			return []string{msg}
		}
		return nil
	})
}

// Chain runs validators in order and concatenates their messages. Nil entries
// are skipped.
func Chain(validators ...form.Validator) form.Validator {
	return form.ValidatorFunc(func(name string, value any, data *form.Data) []string {
		var out []string
		for _, v := range validators {
			if v == nil {
				continue
			}
			out = append(out, v.Validate(name, value, data)...)
		}
		return out
	})
}

// eachString applies ok to a scalar value or to each element of a list and
// reports msg once if any element fails.
func eachString(ok func(string) bool, msg string) form.Validator {
	return form.ValidatorFunc(func(_ string, value any, _ *form.Data) []string {
		for _, s := range stringValues(value) {
			if s == "" {
				continue
			}
			if !ok(s) {
				return []string{msg}
			}
		}
		return nil
	})
}

func stringValues(value any) []string {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, toString(rv.Index(i).Interface()))
		}
		return out
	}
	return []string{toString(value)}
}

func count(value any) int {
	if value == nil {
		return 0
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len()
	}
	if toString(value) == "" {
		return 0
	}
	return 1
}

func isEmpty(value any) bool {
	return count(value) == 0
}

func isMissing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	}
	return false
}

func toString(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprint(value)
}
