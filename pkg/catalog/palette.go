package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed palette.yaml
var builtinPalette []byte

// Item describes one draggable palette template. ID is the drag source
// identifier and always equals the field kind.
type Item struct {
	ID          Kind   `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Palette is the ordered set of items offered to the designer.
type Palette struct {
	items []Item
	index map[Kind]int
}

type paletteDocument struct {
	Items []Item `json:"items" yaml:"items"`
}

// DefaultPalette returns the embedded palette covering every known kind.
func DefaultPalette() *Palette {
	palette, err := parsePalette(builtinPalette, "palette.yaml")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded palette: %v", err))
	}
	return palette
}

// Items returns a copy of the palette entries in display order.
func (p *Palette) Items() []Item {
	if p == nil {
		return nil
	}
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Lookup returns the palette entry for kind.
func (p *Palette) Lookup(kind Kind) (Item, bool) {
	if p == nil {
		return Item{}, false
	}
	idx, ok := p.index[kind]
	if !ok {
		return Item{}, false
	}
	return p.items[idx], true
}

// Len reports the number of palette entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Overlay applies label/description/icon overrides from the supplied file
// (YAML or JSON, chosen by extension) on top of the palette. Entries must
// name a known kind; blank values keep the existing text.
func (p *Palette) Overlay(fsys fs.FS, path string) (*Palette, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read overlay %s: %w", path, err)
	}
	doc, err := decodePalette(data, path)
	if err != nil {
		return nil, err
	}

	out := &Palette{items: p.Items(), index: make(map[Kind]int, len(p.items))}
	for idx, item := range out.items {
		out.index[item.ID] = idx
	}
	for _, override := range doc.Items {
		kind := ParseKind(string(override.ID))
		idx, ok := out.index[kind]
		if !ok {
			return nil, fmt.Errorf("catalog: overlay %s references unknown kind %q%s", path, kind, SuggestionSuffix(kind))
		}
		item := out.items[idx]
		if label := strings.TrimSpace(override.Label); label != "" {
			item.Label = label
		}
		if desc := strings.TrimSpace(override.Description); desc != "" {
			item.Description = desc
		}
		if override.Icon != "" {
			item.Icon = normaliseIcon(override.Icon)
		}
		out.items[idx] = item
	}
	return out, nil
}

func parsePalette(data []byte, path string) (*Palette, error) {
	doc, err := decodePalette(data, path)
	if err != nil {
		return nil, err
	}
	palette := &Palette{index: make(map[Kind]int, len(doc.Items))}
	for _, item := range doc.Items {
		item.ID = ParseKind(string(item.ID))
		if !Known(item.ID) {
			return nil, fmt.Errorf("catalog: palette %s lists unknown kind %q", path, item.ID)
		}
		if _, dup := palette.index[item.ID]; dup {
			return nil, fmt.Errorf("catalog: palette %s lists kind %q twice", path, item.ID)
		}
		item.Icon = normaliseIcon(item.Icon)
		palette.index[item.ID] = len(palette.items)
		palette.items = append(palette.items, item)
	}
	for _, kind := range orderedKinds {
		if _, ok := palette.index[kind]; !ok {
			return nil, fmt.Errorf("catalog: palette %s is missing kind %q", path, kind)
		}
	}
	return palette, nil
}

func decodePalette(data []byte, path string) (paletteDocument, error) {
	var doc paletteDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return paletteDocument{}, fmt.Errorf("catalog: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return paletteDocument{}, fmt.Errorf("catalog: parse %s: %w", path, err)
		}
	default:
		return paletteDocument{}, fmt.Errorf("catalog: unsupported palette file %s", path)
	}
	return doc, nil
}

// normaliseIcon keeps plain icon names as-is and runs inline markup through
// the SVG sanitiser.
func normaliseIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	return sanitizeIconMarkup(trimmed)
}
