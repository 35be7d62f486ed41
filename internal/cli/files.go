package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/pkg/render"
	"github.com/goliatone/go-formdesigner/pkg/renderers/vanilla"
	"github.com/goliatone/go-formdesigner/pkg/renderers/tui"
)

func newPreviewCommand(a *app) *cobra.Command {
	var (
		rendererName string
		mode         string
		selected     string
		output       string
		templates    string
	)
	cmd := &cobra.Command{
		Use:   "preview <schema.json|schema.yaml|->",
		Short: "Render an exported schema",
		Long: `Render a previously exported schema with one of the presentation
renderers: vanilla (HTML), outline (terminal) or tui (fill the form
interactively and print the answers as JSON).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			schema, err := readSchema(args[0], a.stdin)
			if err != nil {
				return err
			}

			wsOpts, err := workspaceOptions(cfg)
			if err != nil {
				return err
			}
			if templates != "" {
				wsOpts = append(wsOpts, formdesigner.WithVanillaOptions(vanilla.WithTemplatesDir(templates)))
			}
			ws, err := formdesigner.NewWorkspace(wsOpts...)
			if err != nil {
				return err
			}
			filler, err := tui.New(
				tui.WithPromptDriver(a.promptDriver(cmd.OutOrStdout())),
				tui.WithWidgetRegistry(ws.Widgets()),
			)
			if err != nil {
				return err
			}
			if err := ws.Renderers().Register(filler); err != nil {
				return err
			}

			out, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOut()

			data, _, err := ws.Renderers().Render(cmd.Context(), rendererName, schema, render.RenderOptions{
				Mode:            render.ParseMode(mode),
				SelectedFieldID: selected,
				Theme:           cfg.Theme.Name,
				Variant:         cfg.Theme.Variant,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&rendererName, "renderer", "r", "vanilla", "Renderer: vanilla, outline or tui")
	cmd.Flags().StringVar(&mode, "mode", "preview", "Surface: preview or canvas")
	cmd.Flags().StringVar(&selected, "selected", "", "Field id highlighted in canvas mode")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&templates, "templates", "", "Directory holding templates/form.tmpl and its partials for the vanilla renderer")
	return cmd
}

func newExportCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <schema.json|schema.yaml|->",
		Short: "Convert an exported schema between json, yaml and openapi",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(map[string]any{"export.format": format})
			if err != nil {
				return err
			}
			schema, err := readSchema(args[0], a.stdin)
			if err != nil {
				return err
			}
			if !isExportFormat(cfg.Export.Format) {
				return fmt.Errorf("unsupported export format %q", cfg.Export.Format)
			}

			wsOpts, err := workspaceOptions(cfg)
			if err != nil {
				return err
			}
			ws, err := formdesigner.NewWorkspace(wsOpts...)
			if err != nil {
				return err
			}
			data, _, err := ws.Renderers().Render(cmd.Context(), cfg.Export.Format, schema, render.RenderOptions{})
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOut()
			_, err = fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json, yaml or openapi")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newPaletteCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List the draggable field kinds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			palette, err := loadPalette(cfg.Palette.Overlay)
			if err != nil {
				return err
			}
			items := palette.Items()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"items": items})
			}
			for _, item := range items {
				line := fmt.Sprintf("%-14s %s", item.ID, item.Label)
				if item.Description != "" {
					line += "  - " + item.Description
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the palette as JSON")
	return cmd
}

func isExportFormat(format string) bool {
	switch format {
	case "json", "yaml", "openapi":
		return true
	}
	return false
}
