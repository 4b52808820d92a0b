// Package steps holds the step schema registry: the ordered, read-only set of
// step definitions a wizard walks through. Registries are built once, either
// from Go values (New), from a YAML/JSON step document (LoadFS), or from an
// OpenAPI component schema whose properties carry `x-wizard-step` hints
// (FromOpenAPI). Registration returns the built-in two-step registration flow.
package steps
