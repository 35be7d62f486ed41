// Package outline draws the canvas as a terminal tree: one block per
// section, one line per field, with the selected field marked.
package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/widgets"
)

// Option configures the outline renderer.
type Option func(*Renderer)

// WithStyles replaces the default palette.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// Renderer draws the form as a styled terminal outline, one line per field.
// Unknown kinds are skipped.
type Renderer struct {
	styles Styles
}

var _ render.Renderer = (*Renderer)(nil)

// New builds an outline renderer with DefaultStyles.
func New(options ...Option) *Renderer {
	r := &Renderer{styles: DefaultStyles()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return "outline" }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render draws schema. In canvas mode the selected field is marked.
func (r *Renderer) Render(_ context.Context, schema projection.Schema, opts render.RenderOptions) ([]byte, error) {
	s := r.styles
	blocks := []string{s.Title.Render(schema.Title)}

	if len(schema.Sections) == 0 {
		blocks = append(blocks, s.Muted.Render("(no sections)"))
	}
	for _, section := range schema.Sections {
		lines := []string{s.Section.Render(fmt.Sprintf("%s  [%s]", section.Title, section.ID))}
		count := 0
		for _, field := range section.Fields {
			if _, ok := widgets.For(field.Type); !ok {
				continue
			}
			count++
			lines = append(lines, r.fieldLine(field, opts.IsCanvas() && opts.SelectedFieldID == field.ID))
		}
		if count == 0 {
			lines = append(lines, s.Muted.Render("  (drop fields here)"))
		}
		blocks = append(blocks, s.Box.Render(strings.Join(lines, "\n")))
	}
	return []byte(strings.Join(blocks, "\n") + "\n"), nil
}

func (r *Renderer) fieldLine(field projection.Field, selected bool) string {
	s := r.styles
	label := field.Config.Label()
	if label == "" {
		label = field.ID
	}
	marker, style := IconField, s.Field
	if selected {
		marker, style = IconSelected, s.Selected
	}
	line := fmt.Sprintf("%s %s %s", marker, style.Render(label), s.Kind.Render("("+string(field.Type)+")"))
	if field.Config.Required() {
		line += " " + s.Required.Render(IconRequired)
	}
	return "  " + line + s.Muted.Render("  "+field.ID)
}
