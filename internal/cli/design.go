package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/designer"
)

func newDesignCommand(a *app) *cobra.Command {
	var (
		title  string
		policy string
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design a form interactively in the terminal",
		Long: `Open the terminal designer. Add sections, drag palette fields into them,
edit field properties and toggle the preview and JSON views. Picking Finish
exports the form (json, yaml or openapi) to --out or stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(map[string]any{
				"form.title":    title,
				"dnd.policy":    policy,
				"export.format": format,
			})
			if err != nil {
				return err
			}
			logger := a.logger(cfg, cmd.ErrOrStderr())
			defer logger.Sync()

			wsOpts, err := workspaceOptions(cfg)
			if err != nil {
				return err
			}
			ws, err := formdesigner.NewWorkspace(wsOpts...)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOut()

			d, err := designer.New(ws,
				designer.WithPromptDriver(a.promptDriver(cmd.OutOrStdout())),
				designer.WithOutput(cmd.OutOrStdout()),
				designer.WithExport(out, cfg.Export.Format),
				designer.WithLogger(logger.Named("designer")),
			)
			if err != nil {
				return err
			}
			return d.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Form title")
	cmd.Flags().StringVar(&policy, "policy", "", "Unknown kind policy: permissive, ignore or reject")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: json, yaml or openapi")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Export file (default stdout)")
	return cmd
}
