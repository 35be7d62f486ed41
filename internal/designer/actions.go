package designer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/dnd"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/renderers/tui"
)

// Property labels offered by Edit field.
const (
	PropLabel       = "Label"
	PropPlaceholder = "Placeholder"
	PropRequired    = "Required"
	PropOptions     = "Options"
	PropMin         = "Minimum"
	PropMax         = "Maximum"
	PropValue       = "Value"
	PropColor       = "Color"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type fieldRef struct {
	sectionID string
	field     document.Field
}

func (d *Designer) addSection(context.Context) error {
	d.ws.Store().AddSection()
	return nil
}

func (d *Designer) renameSection(ctx context.Context) error {
	section, ok, err := d.pickSection(ctx, "Rename which section?")
	if err != nil || !ok {
		return err
	}
	title, err := d.driver.Input(ctx, tui.InputConfig{Message: "New title", Default: section.Title})
	if err != nil {
		return err
	}
	if !d.ws.Store().UpdateSectionTitle(section.ID, title) {
		return d.driver.Info(ctx, "Title unchanged.")
	}
	return nil
}

func (d *Designer) removeSection(ctx context.Context) error {
	section, ok, err := d.pickSection(ctx, "Remove which section?")
	if err != nil || !ok {
		return err
	}
	if len(section.Fields) > 0 {
		confirmed, err := d.driver.Confirm(ctx, tui.ConfirmConfig{
			Message: fmt.Sprintf("%q holds %d field(s). Remove anyway?", section.Title, len(section.Fields)),
		})
		if err != nil || !confirmed {
			return err
		}
	}
	d.ws.Store().RemoveSection(section.ID)
	return nil
}

// addField walks the user through a drag gesture: pick a palette item, then
// a drop target. Cancelling at the target step is a drop outside every
// section.
func (d *Designer) addField(ctx context.Context) error {
	items := d.ws.Palette().Items()
	labels := make([]string, 0, len(items)+1)
	for _, item := range items {
		label := item.Label
		if item.Description != "" {
			label += " - " + item.Description
		}
		labels = append(labels, label)
	}
	labels = append(labels, ChoiceCancel)

	idx, err := d.driver.Select(ctx, tui.SelectConfig{Message: "Drag which field?", Options: labels, PageSize: 10})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(items) {
		return nil
	}

	doc := d.ws.Store().Snapshot()
	targets := make([]string, 0, len(doc.Sections)+1)
	for _, section := range doc.Sections {
		targets = append(targets, section.Title)
	}
	targets = append(targets, ChoiceCancel)
	target, err := d.driver.Select(ctx, tui.SelectConfig{Message: "Drop into which section?", Options: targets})
	if err != nil {
		return err
	}

	event := dnd.DragEnd{Active: string(items[idx].ID)}
	if target >= 0 && target < len(doc.Sections) {
		event.Over = doc.Sections[target].ID
	}
	if _, err := d.ws.Drop(event); err != nil {
		return d.driver.Info(ctx, err.Error())
	}
	return nil
}

func (d *Designer) editField(ctx context.Context) error {
	ref, ok, err := d.pickField(ctx, "Edit which field?", false)
	if err != nil || !ok {
		return err
	}
	cfg := ref.field.Config
	kind := ref.field.Kind

	props := []string{PropLabel}
	if catalog.UsesPlaceholder(kind) {
		props = append(props, PropPlaceholder)
	}
	props = append(props, PropRequired)
	switch {
	case catalog.IsChoice(kind):
		props = append(props, PropOptions)
	case kind == catalog.KindRange:
		props = append(props, PropMin, PropMax, PropValue)
	case kind == catalog.KindColor:
		props = append(props, PropColor)
	}
	props = append(props, ChoiceCancel)

	idx, err := d.driver.Select(ctx, tui.SelectConfig{Message: "Change which property?", Options: props})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(props)-1 {
		return nil
	}

	var partial document.Config
	switch props[idx] {
	case PropLabel:
		partial, err = d.askString(ctx, catalog.KeyLabel, "Label", cfg.Label(), nil)
	case PropPlaceholder:
		partial, err = d.askString(ctx, catalog.KeyPlaceholder, "Placeholder", cfg.Placeholder(), nil)
	case PropRequired:
		var required bool
		required, err = d.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Required?", Default: cfg.Required()})
		partial = document.Config{catalog.KeyRequired: required}
	case PropOptions:
		var raw string
		raw, err = d.driver.Input(ctx, tui.InputConfig{
			Message: "Options",
			Default: strings.Join(cfg.Options(), ", "),
			Help:    "comma separated",
		})
		partial = document.Config{catalog.KeyOptions: splitOptions(raw)}
	case PropMin:
		partial, err = d.askNumber(ctx, catalog.KeyMin, "Minimum", cfg, catalog.DefaultRangeMin)
	case PropMax:
		partial, err = d.askNumber(ctx, catalog.KeyMax, "Maximum", cfg, catalog.DefaultRangeMax)
	case PropValue:
		partial, err = d.askNumber(ctx, catalog.KeyValue, "Value", cfg, catalog.DefaultRangeValue)
	case PropColor:
		current := cfg.String(catalog.KeyValue)
		if current == "" {
			current = catalog.DefaultColorValue
		}
		partial, err = d.askString(ctx, catalog.KeyValue, "Color", current, func(v string) error {
			if !colorPattern.MatchString(strings.TrimSpace(v)) {
				return fmt.Errorf("use #rrggbb")
			}
			return nil
		})
	}
	if err != nil || partial == nil {
		return err
	}
	d.ws.Store().UpdateFieldConfig(ref.sectionID, ref.field.ID, partial)
	return nil
}

func (d *Designer) removeField(ctx context.Context) error {
	ref, ok, err := d.pickField(ctx, "Remove which field?", false)
	if err != nil || !ok {
		return err
	}
	d.ws.Store().RemoveField(ref.sectionID, ref.field.ID)
	return nil
}

func (d *Designer) selectField(ctx context.Context) error {
	ref, ok, err := d.pickField(ctx, "Select which field?", true)
	if err != nil || !ok {
		return err
	}
	d.ws.Store().SelectField(ref.field.ID)
	return nil
}

func (d *Designer) togglePreview(context.Context) error {
	d.ws.Store().TogglePreview()
	return nil
}

func (d *Designer) toggleJSON(context.Context) error {
	d.ws.Store().ToggleJSONView()
	return nil
}

// fillPreview lets the user fill the form the way an end user would and
// prints the collected values. Nothing is written back to the document.
func (d *Designer) fillPreview(ctx context.Context) error {
	renderer, err := tui.New(
		tui.WithPromptDriver(d.driver),
		tui.WithOutputFormat(tui.OutputFormatPrettyText),
		tui.WithWidgetRegistry(d.ws.Widgets()),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(ctx, d.ws.Schema(), render.RenderOptions{Mode: render.ModePreview})
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, string(out))
	return nil
}

func (d *Designer) pickSection(ctx context.Context, message string) (document.Section, bool, error) {
	doc := d.ws.Store().Snapshot()
	labels := make([]string, 0, len(doc.Sections)+1)
	for _, section := range doc.Sections {
		labels = append(labels, fmt.Sprintf("%s [%s]", section.Title, section.ID))
	}
	labels = append(labels, ChoiceCancel)
	idx, err := d.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels})
	if err != nil {
		return document.Section{}, false, err
	}
	if idx < 0 || idx >= len(doc.Sections) {
		return document.Section{}, false, nil
	}
	return doc.Sections[idx], true, nil
}

// pickField lists every field as "Section / Label (kind)". With allowNone
// the list offers ChoiceNone, returned as ok with an empty field.
func (d *Designer) pickField(ctx context.Context, message string, allowNone bool) (fieldRef, bool, error) {
	doc := d.ws.Store().Snapshot()
	var refs []fieldRef
	var labels []string
	for _, section := range doc.Sections {
		for _, field := range section.Fields {
			refs = append(refs, fieldRef{sectionID: section.ID, field: field})
			label := field.Config.Label()
			if label == "" {
				label = field.ID
			}
			labels = append(labels, fmt.Sprintf("%s / %s (%s)", section.Title, label, field.Kind))
		}
	}
	if allowNone {
		refs = append(refs, fieldRef{})
		labels = append(labels, ChoiceNone)
	}
	labels = append(labels, ChoiceCancel)

	idx, err := d.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels, PageSize: 10})
	if err != nil {
		return fieldRef{}, false, err
	}
	if idx < 0 || idx >= len(refs) {
		return fieldRef{}, false, nil
	}
	return refs[idx], true, nil
}

func (d *Designer) askString(ctx context.Context, key, message, current string, validate func(string) error) (document.Config, error) {
	value, err := d.driver.Input(ctx, tui.InputConfig{Message: message, Default: current, Validator: validate})
	if err != nil {
		return nil, err
	}
	return document.Config{key: strings.TrimSpace(value)}, nil
}

func (d *Designer) askNumber(ctx context.Context, key, message string, cfg document.Config, fallback float64) (document.Config, error) {
	current := fallback
	if v, ok := cfg.Number(key); ok {
		current = v
	}
	raw, err := d.driver.Input(ctx, tui.InputConfig{
		Message: message,
		Default: strconv.FormatFloat(current, 'f', -1, 64),
		Validator: func(v string) error {
			if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
				return fmt.Errorf("enter a number")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, d.driver.Info(ctx, fmt.Sprintf("%s must be a number", message))
	}
	return document.Config{key: n}, nil
}

func splitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
