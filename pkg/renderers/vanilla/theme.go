package vanilla

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// ErrThemeNotFound is returned by StaticSelector for unregistered names.
var ErrThemeNotFound = errors.New("vanilla: theme not found")

// StaticSelector resolves go-theme selections from manifests held in memory.
type StaticSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector registers manifests by name. The first manifest becomes
// the default when defaultTheme is empty.
func NewStaticSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) *StaticSelector {
	s := &StaticSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select implements theme.ThemeSelector.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

type themeFile struct {
	Themes []themeEntry `yaml:"themes"`
}

type themeEntry struct {
	Name     string                  `yaml:"name"`
	Version  string                  `yaml:"version"`
	Tokens   map[string]string       `yaml:"tokens"`
	Assets   assetEntry              `yaml:"assets"`
	Variants map[string]variantEntry `yaml:"variants"`
}

type variantEntry struct {
	Tokens map[string]string `yaml:"tokens"`
	Assets assetEntry        `yaml:"assets"`
}

type assetEntry struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// LoadThemes decodes a YAML list of theme manifests:
//
//	themes:
//	  - name: acme
//	    tokens: {brand: "#123456"}
//	    variants:
//	      dark: {tokens: {brand: "#654321"}}
func LoadThemes(data []byte) ([]*theme.Manifest, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("vanilla: decode themes: %w", err)
	}
	out := make([]*theme.Manifest, 0, len(file.Themes))
	for idx, entry := range file.Themes {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("vanilla: theme #%d has no name", idx+1)
		}
		manifest := &theme.Manifest{
			Name:    entry.Name,
			Version: entry.Version,
			Tokens:  entry.Tokens,
			Assets:  theme.Assets{Prefix: entry.Assets.Prefix, Files: entry.Assets.Files},
		}
		if len(entry.Variants) > 0 {
			manifest.Variants = make(map[string]theme.Variant, len(entry.Variants))
			for name, variant := range entry.Variants {
				manifest.Variants[name] = theme.Variant{
					Tokens: variant.Tokens,
					Assets: theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
				}
			}
		}
		out = append(out, manifest)
	}
	return out, nil
}

// rendererConfig flattens a selection: variant tokens and asset files
// override the base manifest, and every token becomes a --name custom
// property.
func rendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	for key, value := range manifest.Assets.Files {
		files[key] = value
	}
	if variant, ok := manifest.Variants[selection.Variant]; ok {
		for key, value := range variant.Tokens {
			tokens[key] = value
		}
		for key, value := range variant.Assets.Files {
			files[key] = value
		}
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  tokens,
		CSSVars: vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}
