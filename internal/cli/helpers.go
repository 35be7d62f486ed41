package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/config"
	"github.com/goliatone/go-formdesigner/pkg/catalog"
	"github.com/goliatone/go-formdesigner/pkg/dnd"
	"github.com/goliatone/go-formdesigner/pkg/document"
	"github.com/goliatone/go-formdesigner/pkg/export/openapi"
	"github.com/goliatone/go-formdesigner/pkg/projection"
	"github.com/goliatone/go-formdesigner/pkg/renderers/vanilla"
)

// workspaceOptions translates configuration into workspace options shared by
// the serve and design commands.
func workspaceOptions(cfg *config.Config) ([]formdesigner.Option, error) {
	palette, err := loadPalette(cfg.Palette.Overlay)
	if err != nil {
		return nil, err
	}
	policy, err := dnd.ParsePolicy(cfg.DnD.Policy)
	if err != nil {
		return nil, err
	}

	storeOpts := []document.Option{document.WithTitle(cfg.Form.Title)}
	switch strings.ToLower(strings.TrimSpace(cfg.Form.IDs)) {
	case "", "uuid":
	case "sequence":
		storeOpts = append(storeOpts, document.WithIDGenerator(&document.SequenceGenerator{}))
	default:
		return nil, fmt.Errorf("unknown form.ids %q (want uuid or sequence)", cfg.Form.IDs)
	}

	vanillaOpts, err := themeOptions(cfg.Theme)
	if err != nil {
		return nil, err
	}

	return []formdesigner.Option{
		formdesigner.WithPalette(palette),
		formdesigner.WithStoreOptions(storeOpts...),
		formdesigner.WithDropOptions(dnd.WithPolicy(policy), dnd.WithSourcePrefix(cfg.DnD.SourcePrefix)),
		formdesigner.WithOpenAPIOptions(openapi.WithVersion(cfg.Export.Version), openapi.WithBasePath(cfg.Export.BasePath)),
		formdesigner.WithVanillaOptions(vanillaOpts...),
	}, nil
}

func loadPalette(overlay string) (*catalog.Palette, error) {
	palette := catalog.DefaultPalette()
	if strings.TrimSpace(overlay) == "" {
		return palette, nil
	}
	return palette.Overlay(os.DirFS(filepath.Dir(overlay)), filepath.Base(overlay))
}

func themeOptions(cfg config.ThemeConfig) ([]vanilla.Option, error) {
	opts := []vanilla.Option{vanilla.WithDefaultStyles()}
	if strings.TrimSpace(cfg.File) == "" {
		return opts, nil
	}
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}
	manifests, err := vanilla.LoadThemes(data)
	if err != nil {
		return nil, err
	}
	selector := vanilla.NewStaticSelector(cfg.Name, cfg.Variant, manifests...)
	return append(opts, vanilla.WithThemeSelector(selector)), nil
}

// readSchema decodes an exported schema from path, or stdin for "-".
func readSchema(path string, stdin io.Reader) (projection.Schema, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return projection.Schema{}, fmt.Errorf("read schema: %w", err)
	}
	return projection.Decode(data)
}

// openOutput returns stdout-like fallback for "" and "-", or a created file.
func openOutput(path string, fallback io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return fallback, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return file, file.Close, nil
}
