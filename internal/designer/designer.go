// Package designer is the interactive terminal front end: a prompt-driven
// menu that edits one workspace through the same operations the browser
// surface dispatches.
package designer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/logging"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/renderers/tui"
)

// Menu labels. Tests and scripted drivers select entries by these strings.
const (
	MenuAddSection    = "Add section"
	MenuRenameSection = "Rename section"
	MenuRemoveSection = "Remove section"
	MenuAddField      = "Add field"
	MenuEditField     = "Edit field"
	MenuRemoveField   = "Remove field"
	MenuSelectField   = "Select field"
	MenuTogglePreview = "Toggle preview"
	MenuToggleJSON    = "Toggle JSON view"
	MenuFillPreview   = "Fill preview"
	MenuFinish        = "Finish"

	// ChoiceCancel backs out of a sub-menu. Picking it as a drop target is
	// the same as releasing a drag outside every section.
	ChoiceCancel = "(cancel)"
	// ChoiceNone clears the selection.
	ChoiceNone = "(none)"
)

// Option configures a Designer.
type Option func(*Designer)

// WithPromptDriver replaces the survey-backed terminal driver.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(d *Designer) {
		if driver != nil {
			d.driver = driver
		}
	}
}

// WithOutput sets where the outline and JSON view are printed.
func WithOutput(out io.Writer) Option {
	return func(d *Designer) {
		if out != nil {
			d.out = out
		}
	}
}

// WithExport writes the final document in format to w when the session
// finishes. Format is any export renderer name (json, yaml, openapi).
func WithExport(w io.Writer, format string) Option {
	return func(d *Designer) {
		d.exportTo = w
		if format != "" {
			d.exportFormat = format
		}
	}
}

// WithLogger attaches a logger for mutation tracing.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Designer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Designer runs the menu loop over one workspace.
type Designer struct {
	ws           *formdesigner.Workspace
	driver       tui.PromptDriver
	out          io.Writer
	exportTo     io.Writer
	exportFormat string
	logger       *logging.Logger
}

// New builds a designer over ws.
func New(ws *formdesigner.Workspace, options ...Option) (*Designer, error) {
	if ws == nil {
		return nil, errors.New("designer: workspace is required")
	}
	d := &Designer{
		ws:           ws,
		out:          os.Stdout,
		exportFormat: "json",
		logger:       logging.NewNopLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	if d.driver == nil {
		d.driver = tui.NewSurveyDriver(d.out)
	}
	if !ws.Renderers().Has(d.exportFormat) {
		return nil, fmt.Errorf("designer: unknown export format %q", d.exportFormat)
	}
	return d, nil
}

type menuEntry struct {
	label string
	run   func(ctx context.Context) error
}

// Run loops until Finish is picked or the driver fails. On Finish the
// document is exported when WithExport was given. An aborted prompt returns
// tui.ErrAborted without exporting.
func (d *Designer) Run(ctx context.Context) error {
	unsubscribe := d.ws.Store().Subscribe(func(change document.Change) {
		d.logger.Debug("document changed", logging.String("op", string(change.Op)))
		d.show(ctx, change.Document)
	})
	defer unsubscribe()

	d.show(ctx, d.ws.Store().Snapshot())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries := d.menu()
		labels := make([]string, len(entries))
		for i, entry := range entries {
			labels[i] = entry.label
		}
		idx, err := d.driver.Select(ctx, tui.SelectConfig{Message: "What next?", Options: labels, PageSize: len(labels)})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(entries) {
			return fmt.Errorf("designer: menu index %d out of range", idx)
		}
		entry := entries[idx]
		if entry.label == MenuFinish {
			return d.finish(ctx)
		}
		if err := entry.run(ctx); err != nil {
			return err
		}
	}
}

func (d *Designer) menu() []menuEntry {
	doc := d.ws.Store().Snapshot()
	entries := []menuEntry{{MenuAddSection, d.addSection}}
	if len(doc.Sections) > 0 {
		entries = append(entries,
			menuEntry{MenuRenameSection, d.renameSection},
			menuEntry{MenuRemoveSection, d.removeSection},
			menuEntry{MenuAddField, d.addField},
		)
	}
	if countFields(doc) > 0 {
		entries = append(entries,
			menuEntry{MenuEditField, d.editField},
			menuEntry{MenuRemoveField, d.removeField},
			menuEntry{MenuSelectField, d.selectField},
		)
	}
	entries = append(entries,
		menuEntry{MenuTogglePreview, d.togglePreview},
		menuEntry{MenuToggleJSON, d.toggleJSON},
	)
	if doc.IsPreviewOpen {
		entries = append(entries, menuEntry{MenuFillPreview, d.fillPreview})
	}
	return append(entries, menuEntry{MenuFinish, nil})
}

// show prints the canvas outline, or the preview outline while previewing,
// followed by the JSON view when it is open.
func (d *Designer) show(ctx context.Context, doc document.FormDocument) {
	mode := render.ModeCanvas
	if doc.IsPreviewOpen {
		mode = render.ModePreview
	}
	out, _, err := d.ws.Render(ctx, "outline", formdesigner.RenderOptions{Mode: mode, SelectedFieldID: doc.SelectedFieldID})
	if err != nil {
		d.logger.Warn("outline render failed", logging.Error(err))
	} else {
		fmt.Fprint(d.out, string(out))
	}
	if !doc.IsJSONViewOpen {
		return
	}
	view, _, err := d.ws.Render(ctx, "json", formdesigner.RenderOptions{})
	if err != nil {
		d.logger.Warn("json view render failed", logging.Error(err))
		return
	}
	fmt.Fprintln(d.out, string(view))
}

func (d *Designer) finish(ctx context.Context) error {
	if d.exportTo == nil {
		return nil
	}
	out, _, err := d.ws.Render(ctx, d.exportFormat, formdesigner.RenderOptions{})
	if err != nil {
		return fmt.Errorf("designer: export %s: %w", d.exportFormat, err)
	}
	if _, err := d.exportTo.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("designer: write export: %w", err)
	}
	return nil
}

func countFields(doc document.FormDocument) int {
	total := 0
	for _, section := range doc.Sections {
		total += len(section.Fields)
	}
	return total
}
