package steps

import (
	"embed"
	"io/fs"
)

//go:embed assets/*.yaml
var embeddedSteps embed.FS

// RegistrationFile is the embedded document describing the built-in flow.
const RegistrationFile = "registration.yaml"

// EmbeddedFS returns the bundled step documents.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSteps, "assets")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Registration returns the built-in two-step registration registry:
// personal information followed by location information.
func Registration() *Registry {
	registry, err := LoadFS(EmbeddedFS(), RegistrationFile)
	if err != nil {
		panic(err)
	}
	return registry
}
