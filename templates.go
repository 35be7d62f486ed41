package formdesigner

import (
	"io/fs"

	"github.com/goliatone/go-formdesigner/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the stylesheet bundle served next to rendered
// forms.
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
