package config

// Config is the resolved application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Form    FormConfig    `mapstructure:"form"`
	Palette PaletteConfig `mapstructure:"palette"`
	DnD     DnDConfig     `mapstructure:"dnd"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Export  ExportConfig  `mapstructure:"export"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Caller bool   `mapstructure:"caller"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// FormConfig seeds new documents.
type FormConfig struct {
	Title string `mapstructure:"title"`
	// IDs is "uuid" or "sequence".
	IDs string `mapstructure:"ids"`
}

// PaletteConfig points at an optional palette overlay.
type PaletteConfig struct {
	// Overlay is an optional YAML/JSON file relabeling palette items.
	Overlay string `mapstructure:"overlay"`
}

// DnDConfig configures the drop resolver.
type DnDConfig struct {
	// Policy is permissive, ignore or reject.
	Policy       string `mapstructure:"policy"`
	SourcePrefix string `mapstructure:"source_prefix"`
}

// ThemeConfig selects the HTML theme.
type ThemeConfig struct {
	// File is an optional YAML list of go-theme manifests.
	File    string `mapstructure:"file"`
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// ExportConfig configures export commands and the OpenAPI encoder.
type ExportConfig struct {
	Format   string `mapstructure:"format"`
	Version  string `mapstructure:"version"`
	BasePath string `mapstructure:"base_path"`
}

func defaults() map[string]any {
	return map[string]any{
		"log.level":         "info",
		"log.format":        "console",
		"log.caller":        false,
		"server.addr":       ":8080",
		"form.title":        "Form",
		"form.ids":          "uuid",
		"palette.overlay":   "",
		"dnd.policy":        "permissive",
		"dnd.source_prefix": "",
		"theme.file":        "",
		"theme.name":        "",
		"theme.variant":     "",
		"export.format":     "json",
		"export.version":    "1.0.0",
		"export.base_path":  "/forms",
	}
}
