package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solart/internal/cli/render"
	"github.com/trebuchet-org/solart/internal/domain/config"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "show [artifact]",
		Short: "Show a compiled artifact",
		Long: `Show the ABI with selectors, the gas estimates and the registered
networks of an artifact written by "solart build".

Without an argument the artifact is picked interactively from --dir, which
defaults to the configured output directory.

Examples:
  solart show build/contracts/Token.json
  solart show --dir build/contracts
  solart show build/contracts/Token.json --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON && !cmd.Flags().Changed("format") {
				format = render.FormatJSON
			}
			renderer, err := render.NewShowRenderer(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			params := usecase.ShowArtifactParams{Dir: dir}
			if len(args) == 1 {
				params.Path = args[0]
			}
			if params.Dir == "" {
				params.Dir = artifactDir(app.Config)
			}

			result, err := app.ShowArtifact.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatText, "Output format (text, json, yaml)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to pick artifacts from")

	return cmd
}

// artifactDir is the configured output directory, or the working directory
// when artifacts are not written to disk
func artifactDir(cfg *config.RuntimeConfig) string {
	if cfg.Output == "" || cfg.Output == config.StdoutOutput {
		return "."
	}
	return cfg.Output
}
