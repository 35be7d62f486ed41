// Package cli wires the cobra command tree of the formdesigner binary.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdesigner/internal/config"
	"github.com/goliatone/go-formdesigner/internal/logging"
	"github.com/goliatone/go-formdesigner/pkg/renderers/tui"
)

// Version is stamped at build time.
var Version = "0.1.0"

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	debug      bool

	// driver overrides the survey terminal driver; tests script it.
	driver tui.PromptDriver
	stdin  io.Reader
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formdesigner",
		Short: "Visual form designer",
		Long: `Design forms by dropping palette fields into sections, preview them and
export the result as JSON, YAML or an OpenAPI request schema.

Run "formdesigner serve" for the browser surface or "formdesigner design"
for the interactive terminal designer.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: console or json")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Include caller information in logs")

	root.AddCommand(
		newServeCommand(a),
		newDesignCommand(a),
		newPreviewCommand(a),
		newExportCommand(a),
		newPaletteCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration with the persistent flags and the
// command's own overrides applied last.
func (a *app) loadConfig(overrides map[string]any) (*config.Config, error) {
	merged := map[string]any{
		"log.level":  a.logLevel,
		"log.format": a.logFormat,
	}
	if a.debug {
		merged["log.caller"] = true
	}
	for key, value := range overrides {
		merged[key] = value
	}
	cfg, err := config.Load(a.configPath, merged)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func (a *app) logger(cfg *config.Config, out io.Writer) *logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:        logging.LevelFromString(cfg.Log.Level),
		Format:       cfg.Log.Format,
		Output:       out,
		EnableCaller: cfg.Log.Caller,
	})
}

func (a *app) promptDriver(out io.Writer) tui.PromptDriver {
	if a.driver != nil {
		return a.driver
	}
	return tui.NewSurveyDriver(out)
}
