// Package openapi exports a projected form schema as an OpenAPI 3 document:
// one POST operation whose request body describes the form's fields, with
// designer metadata under the x-formgen extension.
package openapi
