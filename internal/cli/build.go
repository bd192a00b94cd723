package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solart/internal/app"
	"github.com/trebuchet-org/solart/internal/cli/render"
	"github.com/trebuchet-org/solart/internal/domain"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var (
		stdin bool
		pick  bool
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "build [inputs...]",
		Short: "Compile contracts and write their artifacts",
		Long: `Compile Solidity files with solc and turn the output into JSON artifacts.

Inputs can be files or directories. Directories are scanned for .sol files,
including subdirectories when --recursive is set. Without inputs the src
directory from foundry.toml is used.

The --output flag selects where artifacts go:
  - a directory: one <Name>.json file per contract
  - "-": print every artifact to stdout
  - empty: only report which contracts compiled

Examples:
  solart build contracts/ -o build/contracts
  solart build Token.sol -o - --pretty
  cat Token.sol | solart build --stdin -o -
  solart build contracts/ -o build --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := buildParams(app, args, stdin, cmd.InOrStdin())
			if err != nil {
				return err
			}
			params.Pick = pick

			renderer := render.NewBuildRenderer(cmd.OutOrStdout(), app.Config.JSON)
			if watch {
				return runWatch(cmd, app, params, renderer)
			}

			result, err := app.BuildContracts.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderer.Render(result)
		},
	}

	addBuildFlags(cmd)
	cmd.Flags().BoolVar(&stdin, "stdin", false, "Read the source from stdin")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose which compiled contracts to keep")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rebuild whenever an input changes")

	return cmd
}

// addBuildFlags registers the flags shared by build and watch. They are
// bound to the config keys of the same name.
func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", `Artifact directory, or "-" for stdout`)
	cmd.Flags().Bool("pretty", false, "Indent JSON artifacts")
	cmd.Flags().BoolP("recursive", "r", false, "Scan input directories recursively")
	cmd.Flags().Bool("abi", true, "Request the ABI from solc")
	cmd.Flags().Bool("bin", true, "Request the bytecode from solc")
	cmd.Flags().Bool("gas", true, "Request gas estimates from solc")
}

// buildParams turns the resolved configuration into use case parameters
func buildParams(app *app.App, args []string, stdin bool, in io.Reader) (usecase.BuildParams, error) {
	cfg := app.Config
	params := usecase.BuildParams{
		Inputs:    args,
		Kinds:     cfg.Kinds,
		Output:    cfg.Output,
		Pretty:    cfg.Pretty,
		Recursive: cfg.Recursive,
	}

	if stdin {
		if len(args) > 0 {
			return params, fmt.Errorf("--stdin cannot be combined with input paths")
		}
		source, err := io.ReadAll(in)
		if err != nil {
			return params, fmt.Errorf("failed to read stdin: %w: %w", domain.ErrIO, err)
		}
		params.Stdin = true
		params.Source = string(source)
		return params, nil
	}

	if len(params.Inputs) == 0 {
		params.Inputs = cfg.Sources
	}
	if len(params.Inputs) == 0 {
		return params, fmt.Errorf("%w: pass files or directories to compile", domain.ErrNoInputs)
	}
	return params, nil
}
