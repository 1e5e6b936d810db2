// Package form composes fields, fieldsets and forms into HTML through a
// mustache-style TemplateRenderer and validates submitted values per field.
//
// A Form owns its fields and fieldsets in insertion order. Rendering never
// writes resolved defaults back onto children: the form passes its fallbacks
// (element name, shared templates, required text) as render parameters, so a
// Field renders the same markup for the same state every time.
//
// Validation messages are data. Field.Validate returns an empty slice when the
// value passes and Form.Validate returns nil when every field passes.
package form
