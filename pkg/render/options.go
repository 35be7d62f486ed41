package render

// Mode selects which surface a renderer draws.
type Mode string

const (
	// ModeCanvas draws the editing canvas: sections with titles, field cards
	// and a highlight on the selected field.
	ModeCanvas Mode = "canvas"
	// ModePreview draws fillable controls only, the way an end user sees
	// the form.
	ModePreview Mode = "preview"
)

// ParseMode maps raw input to a Mode, defaulting to preview.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeCanvas {
		return ModeCanvas
	}
	return ModePreview
}

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the schema.
type RenderOptions struct {
	Mode Mode
	// SelectedFieldID marks the field highlighted on the canvas. Ignored in
	// preview mode.
	SelectedFieldID string
	// Values pre-populates preview controls, keyed by field id.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field id, usually the
	// result of ValidateValues.
	Errors map[string][]string
	// Theme and Variant pick the go-theme manifest for renderers that
	// support theming.
	Theme   string
	Variant string
}

// IsCanvas reports whether the canvas surface was requested.
func (o RenderOptions) IsCanvas() bool {
	return o.Mode == ModeCanvas
}
