// Package template defines the engine-agnostic rendering contract used by
// fields, fieldsets and forms. The default engine lives in the mustache
// subpackage; pongo offers a Django-style alternative for custom template sets.
package template
