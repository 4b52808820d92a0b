// Package formwizard is the quick-start entry point: it wires the built-in
// registration steps to a session runtime and exposes the embedded HTML
// templates and browser assets.
package formwizard

import (
	"io/fs"
	"net/http"

	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/session"
	"github.com/goliatone/go-formwizard/pkg/steps"
	"github.com/goliatone/go-formwizard/pkg/transport/httpapi"
)

// New returns a runtime for the built-in two-step registration wizard.
// Without session.WithMaterializer accounts are kept in memory.
func New(options ...session.Option) *session.Runtime {
	return session.NewRuntime(steps.Registration(), options...)
}

// NewFromFS builds a runtime from a JSON or YAML step document in fsys.
func NewFromFS(fsys fs.FS, name string, options ...session.Option) (*session.Runtime, error) {
	registry, err := steps.LoadFS(fsys, name)
	if err != nil {
		return nil, err
	}
	return session.NewRuntime(registry, options...), nil
}

// NewHandler serves runtime over HTTP with the default HTML renderer. It is
// the shortest path to a working wizard:
//
//	http.ListenAndServe(":8383", formwizard.NewHandler(formwizard.New()))
func NewHandler(runtime *session.Runtime, options ...httpapi.Option) (http.Handler, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return httpapi.New(session.NewStore(runtime), renderer, options...), nil
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and the browser runtime served under
// /assets/.
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
