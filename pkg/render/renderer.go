package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/view"
)

// Renderer converts a wizard screen description into a byte representation
// (an HTML page, a plain text transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, desc view.Description) ([]byte, error)
}
