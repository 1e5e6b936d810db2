// Package theme maps go-theme manifests onto form templates. A manifest's
// templates are partial names mapped to template paths:
//
//	forms.form         form template
//	forms.field        field template
//	forms.fieldset     fieldset template
//	forms.errors       errors template
//	forms.input        generic input template
//	forms.input.<type> input template for <type>
//
// Tokens become CSS custom properties set as a style attribute on the form.
package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-htmlform/pkg/form"
)

// Partial names understood by Apply.
const (
	PartialForm        = "forms.form"
	PartialField       = "forms.field"
	PartialFieldset    = "forms.fieldset"
	PartialErrors      = "forms.errors"
	PartialInput       = "forms.input"
	PartialInputPrefix = "forms.input."
)

// ErrUnknownVariant is returned by Resolve when the selected manifest does
// not declare the requested variant.
var ErrUnknownVariant = errors.New("theme: unknown variant")

// Fallbacks lists the partial keys a selection is resolved against: the
// fixed form partials plus every forms.input.<type> declared by the manifest
// or one of its variants. Values are empty so undeclared partials keep the
// form's own templates.
func Fallbacks(manifest *gotheme.Manifest) map[string]string {
	keys := map[string]string{
		PartialForm:     "",
		PartialField:    "",
		PartialFieldset: "",
		PartialErrors:   "",
		PartialInput:    "",
	}
	if manifest == nil {
		return keys
	}
	collect := func(templates map[string]string) {
		for key := range templates {
			if strings.HasPrefix(key, PartialInputPrefix) {
				keys[key] = ""
			}
		}
	}
	collect(manifest.Templates)
	for _, v := range manifest.Variants {
		collect(v.Templates)
	}
	return keys
}

// Resolve selects a theme through selector and flattens it into a renderer
// configuration. Variant templates, tokens and assets override the base
// manifest.
func Resolve(selector gotheme.ThemeSelector, name, variant string) (*gotheme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("theme: selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("theme: select %q/%q: %w", name, variant, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("theme: selection for %q has no manifest", name)
	}
	if v := selection.Variant; v != "" {
		if _, ok := selection.Manifest.Variants[v]; !ok {
			return nil, fmt.Errorf("%w: %q has no variant %q", ErrUnknownVariant, selection.Manifest.Name, v)
		}
	}

	cfg := selection.RendererTheme(Fallbacks(selection.Manifest))
	return &cfg, nil
}

// Templates reads the form partials of cfg. Partial values are paths inside
// files; with a nil files they are used as template text directly.
func Templates(cfg *gotheme.RendererConfig, files fs.FS) (form.TemplateSet, error) {
	var set form.TemplateSet
	if cfg == nil {
		return set, nil
	}

	keys := make([]string, 0, len(cfg.Partials))
	for key, ref := range cfg.Partials {
		if ref == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		target, ok := slot(&set, key)
		if !ok {
			continue
		}
		content, err := readPartial(files, cfg.Partials[key])
		if err != nil {
			return form.TemplateSet{}, fmt.Errorf("theme: partial %s: %w", key, err)
		}
		target(content)
	}
	return set, nil
}

func slot(set *form.TemplateSet, key string) (func(string), bool) {
	input := func(inputType string) func(string) {
		return func(content string) {
			if set.Inputs == nil {
				set.Inputs = make(map[string]string)
			}
			set.Inputs[inputType] = content
		}
	}
	switch {
	case key == PartialForm:
		return func(c string) { set.Form = c }, true
	case key == PartialField:
		return func(c string) { set.Field = c }, true
	case key == PartialFieldset:
		return func(c string) { set.Fieldset = c }, true
	case key == PartialErrors:
		return func(c string) { set.Errors = c }, true
	case key == PartialInput:
		return input(form.GenericInputTemplate), true
	case strings.HasPrefix(key, PartialInputPrefix):
		return input(strings.TrimPrefix(key, PartialInputPrefix)), true
	}
	return nil, false
}

func readPartial(files fs.FS, ref string) (string, error) {
	if files == nil {
		return ref, nil
	}
	data, err := fs.ReadFile(files, ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Style renders CSS custom properties as an inline style value, sorted by
// name.
func Style(cssVars map[string]string) string {
	if len(cssVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cssVars))
	for key := range cssVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cssVars[key])
	}
	return strings.Join(parts, "; ")
}

// Apply installs the theme's templates on f and sets the theme's CSS
// variables as the form's style attribute.
func Apply(f *form.Form, cfg *gotheme.RendererConfig, files fs.FS) error {
	if f == nil || cfg == nil {
		return nil
	}
	set, err := Templates(cfg, files)
	if err != nil {
		return err
	}
	f.ApplyTemplates(set)
	if style := Style(cfg.CSSVars); style != "" {
		f.SetAttribute("style", style)
	}
	f.SetAttribute("data-theme", cfg.Theme)
	if cfg.Variant != "" {
		f.SetAttribute("data-theme-variant", cfg.Variant)
	}
	return nil
}
