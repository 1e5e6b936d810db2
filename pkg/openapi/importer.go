package openapi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-htmlform/pkg/definition"
	"github.com/goliatone/go-htmlform/pkg/source"
)

// ErrOperationNotFound is returned when an operation id is not in the
// document.
var ErrOperationNotFound = errors.New("openapi: operation not found")

var methodOrder = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "HEAD", "OPTIONS", "TRACE"}

// Options tune how documents are loaded and converted.
type Options struct {
	// ResolveReferences allows external $ref targets and validates the
	// document after loading.
	ResolveReferences bool
	// SubmitText is the caption of the trailing submit field.
	SubmitText string
}

// Option mutates Options.
type Option func(*Options)

// WithReferenceResolution enables external references and validation.
func WithReferenceResolution() Option {
	return func(o *Options) {
		o.ResolveReferences = true
	}
}

// WithSubmitText sets the caption of the generated submit field.
func WithSubmitText(text string) Option {
	return func(o *Options) {
		if text != "" {
			o.SubmitText = text
		}
	}
}

type operation struct {
	id     string
	method string
	path   string
	op     *openapi3.Operation
}

// Importer indexes the operations of a loaded OpenAPI document.
type Importer struct {
	options    Options
	operations map[string]operation
}

// LoadData parses an OpenAPI document in YAML or JSON.
func LoadData(ctx context.Context, data []byte, opts ...Option) (*Importer, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	options := Options{SubmitText: "Submit"}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	imp := &Importer{options: options, operations: make(map[string]operation)}
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for _, method := range methodOrder {
				imp.collect(method, path, item.GetOperation(method))
			}
		}
	}
	if len(imp.operations) == 0 {
		return nil, errors.New("openapi: document does not contain any operations")
	}
	return imp, nil
}

// LoadFile reads and parses the document at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Importer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return LoadData(ctx, data, opts...)
}

// Load fetches src through loader and parses it.
func Load(ctx context.Context, loader *source.Loader, src source.Source, opts ...Option) (*Importer, error) {
	if loader == nil {
		loader = source.NewLoader()
	}
	data, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return LoadData(ctx, data, opts...)
}

func (i *Importer) collect(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	i.operations[id] = operation{id: id, method: method, path: path, op: op}
}

// OperationIDs lists the known operation ids sorted by name.
func (i *Importer) OperationIDs() []string {
	ids := make([]string, 0, len(i.operations))
	for id := range i.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Document builds a form definition for operationID. HTML forms only submit
// GET and POST, so other methods post with a hidden _method field.
func (i *Importer) Document(operationID string) (*definition.Document, error) {
	entry, ok := i.operations[operationID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	doc := &definition.Document{
		Form: definition.FormSpec{
			Name:   entry.id,
			Action: entry.path,
			Method: entry.method,
		},
	}
	if entry.method != "GET" && entry.method != "POST" {
		doc.Form.Method = "POST"
		doc.Fields = append(doc.Fields, definition.FieldSpec{
			Key:       "_method",
			InputType: "hidden",
			Value:     entry.method,
		})
	}

	schema := requestSchema(entry.op.RequestBody)
	if schema != nil {
		doc.Fields = append(doc.Fields, fieldsFromSchema(schema)...)
	}

	doc.Fields = append(doc.Fields, definition.FieldSpec{
		Key:       "submit",
		InputType: "submit",
		Value:     i.options.SubmitText,
	})

	if err := doc.Check(); err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	return doc, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "multipart/form-data", "application/json"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
