package template

import (
	"io"
)

// TemplateRenderer is the engine contract the HTML renderer depends on.
// RenderTemplate executes the named template and, when writers are given,
// copies the result to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
