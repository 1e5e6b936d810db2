package definition

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/goliatone/go-htmlform/pkg/form"
	"github.com/goliatone/go-htmlform/pkg/render/template/pongo"
)

// Template engines selectable with form.engine.
const (
	EngineMustache = "mustache"
	EnginePongo    = "pongo"
)

// ErrUnknownEngine is returned for a form.engine Build has no renderer for.
var ErrUnknownEngine = errors.New("definition: unknown template engine")

var (
	pongoOnce   sync.Once
	pongoEngine *pongo.Engine
	pongoErr    error
)

func sharedPongo() (*pongo.Engine, error) {
	pongoOnce.Do(func() {
		pongoEngine, pongoErr = pongo.New()
	})
	return pongoEngine, pongoErr
}

// useEngine fills the template slots cfg left empty with the engine's
// built-in templates and returns the option installing its renderer. The
// mustache engine is the form default and needs neither.
func useEngine(name string, cfg *form.Config) (form.Option, error) {
	switch name {
	case "", EngineMustache:
		return nil, nil
	case EnginePongo:
		engine, err := sharedPongo()
		if err != nil {
			return nil, fmt.Errorf("definition: pongo engine: %w", err)
		}
		cfg.FormTemplate = firstNonEmpty(cfg.FormTemplate, pongo.FormTemplate)
		cfg.FieldTemplate = firstNonEmpty(cfg.FieldTemplate, pongo.FieldTemplate)
		cfg.FieldsetTemplate = firstNonEmpty(cfg.FieldsetTemplate, pongo.FieldsetTemplate)
		cfg.ErrorsTemplate = firstNonEmpty(cfg.ErrorsTemplate, pongo.ErrorsTemplate)
		inputs := pongo.InputTemplates()
		maps.Copy(inputs, cfg.InputTemplates)
		cfg.InputTemplates = inputs
		return form.WithTemplateRenderer(engine), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
