package vanilla

import (
	"fmt"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/widgets"
)

// buildView flattens the schema into plain maps and strings for the
// templates. Fields whose kind has no widget are dropped here.
func buildView(schema projection.Schema, opts render.RenderOptions, registry *widgets.Registry) map[string]any {
	canvas := opts.IsCanvas()
	mode := render.ModePreview
	if canvas {
		mode = render.ModeCanvas
	}

	sections := make([]map[string]any, 0, len(schema.Sections))
	for _, section := range schema.Sections {
		fields := make([]map[string]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			w, ok := registry.Resolve(field)
			if !ok {
				continue
			}
			fields = append(fields, fieldView(field, w, opts, canvas))
		}
		sections = append(sections, map[string]any{
			"id":     section.ID,
			"title":  section.Title,
			"fields": fields,
			"empty":  len(fields) == 0,
		})
	}

	return map[string]any{
		"title":    schema.Title,
		"mode":     string(mode),
		"canvas":   canvas,
		"sections": sections,
	}
}

func fieldView(field projection.Field, w widgets.Widget, opts render.RenderOptions, canvas bool) map[string]any {
	cfg := field.Config
	value, hasValue := opts.Values[field.ID]

	view := map[string]any{
		"id":        field.ID,
		"domID":     fieldControlID(field.ID),
		"kind":      string(field.Type),
		"label":     cfg.Label(),
		"required":  cfg.Required(),
		"selected":  canvas && opts.SelectedFieldID != "" && opts.SelectedFieldID == field.ID,
		"control":   string(w.Control),
		"inputType": w.InputType,
		"disabled":  canvas,
		"errors":    opts.Errors[field.ID],
	}
	if w.Placeholder {
		view["placeholder"] = cfg.Placeholder()
	}

	switch field.Type {
	case catalog.KindColor:
		current := cfg.String(catalog.KeyValue)
		if current == "" {
			current = catalog.DefaultColorValue
		}
		if hasValue {
			current = fmt.Sprint(value)
		}
		view["value"] = current
	case catalog.KindRange:
		lo, hi, current := rangeConfig(cfg)
		if hasValue {
			if n, ok := (document.Config{"v": value}).Number("v"); ok {
				current = n
			}
		}
		view["min"] = formatNumber(lo)
		view["max"] = formatNumber(hi)
		view["value"] = formatNumber(current)
	case catalog.KindPassword, catalog.KindFileUpload:
		// never echoed back
	default:
		if hasValue && !w.Choices {
			view["value"] = fmt.Sprint(value)
		}
	}

	if w.Choices {
		chosen := map[string]bool{}
		if hasValue {
			if single, ok := value.(string); ok {
				chosen[single] = true
			}
			for _, item := range document.StringSlice(value) {
				chosen[item] = true
			}
		}
		options := cfg.Options()
		items := make([]map[string]any, 0, len(options))
		for idx, option := range options {
			items = append(items, map[string]any{
				"value":   option,
				"domID":   optionControlID(field.ID, idx),
				"checked": chosen[option],
			})
		}
		view["options"] = items
	}
	return view
}

func rangeConfig(cfg document.Config) (lo, hi, value float64) {
	lo, hi, value = catalog.DefaultRangeMin, catalog.DefaultRangeMax, catalog.DefaultRangeValue
	if v, ok := cfg.Number(catalog.KeyMin); ok {
		lo = v
	}
	if v, ok := cfg.Number(catalog.KeyMax); ok {
		hi = v
	}
	if v, ok := cfg.Number(catalog.KeyValue); ok {
		value = v
	}
	return lo, hi, value
}
