// Package openapi turns the request body of an OpenAPI 3 operation into a
// form definition document.
package openapi
