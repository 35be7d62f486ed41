package render

import (
	"context"

	"github.com/goliatone/go-formdesigner/pkg/projection"
)

// Renderer converts a projected form schema into a byte representation
// (HTML, JSON, terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema projection.Schema, options RenderOptions) ([]byte, error)
}
