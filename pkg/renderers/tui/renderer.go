package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/widgets"
)

// SkipOption is prepended to single-choice prompts for optional fields.
const SkipOption = "(skip)"

// Renderer implements render.Renderer as an interactive preview: it walks
// the schema, prompts for every field and serializes what was entered.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	widgets           *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		theme:        Theme{SectionPrefix: "== ", ErrorPrefix: "! "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// Render prompts for every renderable field, re-asking until the answer
// passes render.ValidateValues, and returns the collected values.
func (r *Renderer) Render(ctx context.Context, schema projection.Schema, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	state := NewState(opts.Values, opts.Errors)
	labels := make(map[string]string)

	for _, section := range schema.Sections {
		if err := r.driver.Info(ctx, r.theme.SectionPrefix+section.Title); err != nil {
			return nil, err
		}
		for _, field := range section.Fields {
			w, ok := r.widgets.Resolve(field)
			if !ok {
				continue
			}
			labels[field.ID] = fieldLabel(field)
			for _, message := range state.ErrorsFor(field.ID) {
				_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			}
			if err := r.promptField(ctx, field, w, state); err != nil {
				return nil, err
			}
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values, state.Answered(), labels)
}

func (r *Renderer) promptField(ctx context.Context, field projection.Field, w widgets.Widget, state *State) error {
	if w.Choices && len(field.Config.Options()) == 0 {
		return r.driver.Info(ctx, fmt.Sprintf("%s has no options", fieldLabel(field)))
	}
	for {
		value, err := r.ask(ctx, field, w, state)
		if err != nil {
			return err
		}
		messages := render.ValidateValues(singleField(field), map[string]any{field.ID: value})[field.ID]
		if len(messages) == 0 {
			state.Set(field.ID, value)
			return nil
		}
		for _, message := range messages {
			if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
				return err
			}
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field projection.Field, w widgets.Widget, state *State) (any, error) {
	label := promptLabel(field)
	help := ""
	if w.Placeholder {
		help = field.Config.Placeholder()
	}

	switch w.Control {
	case widgets.ControlTextArea:
		resp, err := r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: state.StringDefault(field.ID), Help: help})
		return emptyAsNil(resp), err
	case widgets.ControlSelect, widgets.ControlRadioGroup:
		return r.askChoice(ctx, field, label, state)
	case widgets.ControlCheckboxGroup:
		return r.askChoices(ctx, field, label, state)
	}

	cfg := InputConfig{Message: label, Default: state.StringDefault(field.ID), Help: help}
	switch field.Type {
	case catalog.KindPassword:
		cfg.Default = ""
		resp, err := r.driver.Password(ctx, cfg)
		return emptyAsNil(resp), err
	case catalog.KindColor:
		if cfg.Default == "" {
			cfg.Default = field.Config.String(catalog.KeyValue)
		}
		if cfg.Default == "" {
			cfg.Default = catalog.DefaultColorValue
		}
	case catalog.KindRange:
		lo, hi, current := rangeConfig(field.Config)
		if cfg.Default == "" {
			cfg.Default = strconv.FormatFloat(current, 'f', -1, 64)
		}
		cfg.Help = fmt.Sprintf("%g to %g", lo, hi)
	}

	resp, err := r.driver.Input(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if field.Type == catalog.KindNumber || field.Type == catalog.KindRange {
		trimmed := strings.TrimSpace(resp)
		if trimmed == "" {
			return nil, nil
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n, nil
		}
	}
	return emptyAsNil(resp), nil
}

func (r *Renderer) askChoice(ctx context.Context, field projection.Field, label string, state *State) (any, error) {
	options := field.Config.Options()
	prompt := options
	offset := 0
	if !field.Config.Required() {
		prompt = append([]string{SkipOption}, options...)
		offset = 1
	}
	defaultIdx := 0
	if current := state.Choices(field.ID); len(current) > 0 {
		if idx := indexOf(options, current[0]); idx >= 0 {
			defaultIdx = idx + offset
		}
	}
	idx, err := r.driver.Select(ctx, SelectConfig{Message: label, Options: prompt, DefaultIndex: defaultIdx})
	if err != nil {
		return nil, err
	}
	if idx < offset || idx >= len(prompt) {
		return nil, nil
	}
	return prompt[idx], nil
}

func (r *Renderer) askChoices(ctx context.Context, field projection.Field, label string, state *State) (any, error) {
	options := field.Config.Options()
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Options:  options,
		Defaults: indicesOf(options, state.Choices(field.ID)),
	})
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx])
		}
	}
	return out, nil
}

func (r *Renderer) serialize(values map[string]any, order []string, labels map[string]string) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var buf bytes.Buffer
		for _, id := range order {
			value, ok := values[id]
			if !ok {
				continue
			}
			if list, isList := value.([]string); isList {
				value = strings.Join(list, ", ")
			}
			fmt.Fprintf(&buf, "%s: %v\n", labels[id], value)
		}
		return buf.Bytes(), nil
	}
	if values == nil {
		values = map[string]any{}
	}
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode values: %w", err)
	}
	return payload, nil
}

func singleField(field projection.Field) projection.Schema {
	return projection.Schema{Sections: []projection.Section{{Fields: []projection.Field{field}}}}
}

func fieldLabel(field projection.Field) string {
	if label := field.Config.Label(); label != "" {
		return label
	}
	return field.ID
}

func promptLabel(field projection.Field) string {
	label := fieldLabel(field)
	if field.Config.Required() {
		label += " *"
	}
	return label
}

func emptyAsNil(resp string) any {
	if strings.TrimSpace(resp) == "" {
		return nil
	}
	return resp
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
