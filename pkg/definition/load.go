package definition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-htmlform/pkg/source"
)

// Parse decodes a YAML or JSON document and checks its structure. Input whose
// first non-space byte is '{' is decoded as JSON.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("definition: document is empty")
	}

	var doc Document
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("definition: parse json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("definition: parse yaml: %w", err)
		}
	}

	if err := doc.Check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", path, err)
	}
	return doc, nil
}

// LoadFS reads and parses the document at name inside files.
func LoadFS(files fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", name, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", name, err)
	}
	return doc, nil
}

// Load fetches src through loader and parses it.
func Load(ctx context.Context, loader *source.Loader, src source.Source) (*Document, error) {
	if loader == nil {
		loader = source.NewLoader()
	}
	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("definition: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("definition: %s: %w", src.Location(), err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("definition: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("definition: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Check reports structural problems: an unknown engine, missing or duplicate
// field keys, duplicate fieldset keys and rules without a type.
func (d *Document) Check() error {
	switch d.Form.Engine {
	case "", EngineMustache, EnginePongo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, d.Form.Engine)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i, field := range d.Fields {
		if field.Key == "" {
			return fmt.Errorf("definition: field %d has no key", i)
		}
		if _, dup := seen[field.Key]; dup {
			return fmt.Errorf("definition: duplicate field key %q", field.Key)
		}
		seen[field.Key] = struct{}{}
		for j, rule := range field.Rules {
			if rule.Type == "" {
				return fmt.Errorf("definition: field %q rule %d has no type", field.Key, j)
			}
		}
	}

	sets := make(map[string]struct{}, len(d.Fieldsets))
	for i, set := range d.Fieldsets {
		if set.Key == "" {
			return fmt.Errorf("definition: fieldset %d has no key", i)
		}
		if _, dup := sets[set.Key]; dup {
			return fmt.Errorf("definition: duplicate fieldset key %q", set.Key)
		}
		sets[set.Key] = struct{}{}
	}
	return nil
}
