package template

import (
	"io"
)

// TemplateRenderer is the seam between form components and a template engine.
// Engines interpolate templateContent against data (usually map[string]any),
// return the result and also copy it to every writer in out.
type TemplateRenderer interface {
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// WriteAll copies rendered output to each writer. Engines call it after a
// successful render.
func WriteAll(rendered string, out ...io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return err
		}
	}
	return nil
}
