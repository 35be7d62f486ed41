package formdesigner

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/dnd"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/export/openapi"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/renderers/export"
	"github.com/goliatone/go-formdesigner/pkg/renderers/outline"
	"github.com/goliatone/go-formdesigner/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdesigner/pkg/widgets"
)

// RenderOptions aliases render.RenderOptions so callers can drive renderers
// through the root package.
type RenderOptions = render.RenderOptions

// DragEnd aliases dnd.DragEnd.
type DragEnd = dnd.DragEnd

// Action aliases document.Action.
type Action = document.Action

// ErrUnknownRenderer is returned when a named renderer is not registered.
var ErrUnknownRenderer = errors.New("formdesigner: unknown renderer")

// Option configures a Workspace.
type Option func(*settings)

type settings struct {
	store     []document.Option
	dnd       []dnd.Option
	palette   *catalog.Palette
	renderers []render.Renderer
	openapi   []openapi.Option
	vanilla   []vanilla.Option
	widgets   *widgets.Registry
}

// WithStoreOptions forwards options to document.New.
func WithStoreOptions(options ...document.Option) Option {
	return func(s *settings) {
		s.store = append(s.store, options...)
	}
}

// WithDropOptions forwards options to dnd.NewResolver.
func WithDropOptions(options ...dnd.Option) Option {
	return func(s *settings) {
		s.dnd = append(s.dnd, options...)
	}
}

// WithPalette replaces the embedded default palette.
func WithPalette(palette *catalog.Palette) Option {
	return func(s *settings) {
		if palette != nil {
			s.palette = palette
		}
	}
}

// WithRenderer registers an additional renderer. Renderers given here win
// over the built-in ones with the same name.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *settings) {
		if renderer != nil {
			s.renderers = append(s.renderers, renderer)
		}
	}
}

// WithOpenAPIOptions configures the built-in openapi export renderer.
func WithOpenAPIOptions(options ...openapi.Option) Option {
	return func(s *settings) {
		s.openapi = append(s.openapi, options...)
	}
}

// WithVanillaOptions configures the built-in HTML renderer.
func WithVanillaOptions(options ...vanilla.Option) Option {
	return func(s *settings) {
		s.vanilla = append(s.vanilla, options...)
	}
}

// WithWidgetRegistry sets the widget registry shared by the HTML renderer
// and anything built from Widgets.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(s *settings) {
		if registry != nil {
			s.widgets = registry
		}
	}
}

// Workspace bundles one document store with the collaborators that operate
// on it: the palette offered for dragging, the drop resolver and the
// renderer registry. Like the store, a Workspace is single-owner; callers
// sharing one across goroutines serialise access themselves.
type Workspace struct {
	store     *document.Store
	resolver  *dnd.Resolver
	palette   *catalog.Palette
	renderers *render.Registry
	widgets   *widgets.Registry
}

// NewWorkspace builds an empty workspace. The json, yaml, openapi, outline
// and vanilla renderers are registered unless WithRenderer supplied one under
// the same name.
func NewWorkspace(options ...Option) (*Workspace, error) {
	cfg := settings{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.palette == nil {
		cfg.palette = catalog.DefaultPalette()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	registry := render.NewRegistry()
	for _, renderer := range cfg.renderers {
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("formdesigner: %w", err)
		}
	}

	html, err := vanilla.New(append([]vanilla.Option{vanilla.WithWidgetRegistry(cfg.widgets)}, cfg.vanilla...)...)
	if err != nil {
		return nil, fmt.Errorf("formdesigner: %w", err)
	}
	builtins := []render.Renderer{
		export.JSON{},
		export.YAML{},
		export.OpenAPI{Options: cfg.openapi},
		outline.New(),
		html,
	}
	for _, renderer := range builtins {
		if registry.Has(renderer.Name()) {
			continue
		}
		if err := registry.Register(renderer); err != nil {
			return nil, fmt.Errorf("formdesigner: %w", err)
		}
	}

	return &Workspace{
		store:     document.New(cfg.store...),
		resolver:  dnd.NewResolver(cfg.dnd...),
		palette:   cfg.palette,
		renderers: registry,
		widgets:   cfg.widgets,
	}, nil
}

// Store exposes the document store for direct operation calls and
// subscriptions.
func (w *Workspace) Store() *document.Store { return w.store }

// Palette returns the palette offered for dragging.
func (w *Workspace) Palette() *catalog.Palette { return w.palette }

// Resolver returns the drop resolver.
func (w *Workspace) Resolver() *dnd.Resolver { return w.resolver }

// Renderers returns the renderer registry.
func (w *Workspace) Renderers() *render.Registry { return w.renderers }

// Widgets returns the widget registry the built-in HTML renderer resolves
// controls with. Interactive renderers built later should share it.
func (w *Workspace) Widgets() *widgets.Registry { return w.widgets }

// Dispatch applies one edit action to the store.
func (w *Workspace) Dispatch(action Action) (bool, error) {
	return w.store.Dispatch(action)
}

// Drop resolves a finished drag gesture into at most one addField.
func (w *Workspace) Drop(event DragEnd) (bool, error) {
	return w.resolver.Apply(w.store, event)
}

// Schema projects the current document.
func (w *Workspace) Schema() projection.Schema {
	return projection.FromStore(w.store)
}

// Render projects the document and renders it with the named renderer,
// returning the output and its content type. Empty Mode and SelectedFieldID
// are filled from the document's preview flag and selection.
func (w *Workspace) Render(ctx context.Context, name string, opts RenderOptions) ([]byte, string, error) {
	if !w.renderers.Has(name) {
		return nil, "", fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	doc := w.store.Snapshot()
	if opts.Mode == "" {
		opts.Mode = render.ModeCanvas
		if doc.IsPreviewOpen {
			opts.Mode = render.ModePreview
		}
	}
	if opts.SelectedFieldID == "" {
		opts.SelectedFieldID = doc.SelectedFieldID
	}
	return w.renderers.Render(ctx, name, projection.Project(doc), opts)
}
