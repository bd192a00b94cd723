package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solart/internal/app"
	"github.com/trebuchet-org/solart/internal/cli/render"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [inputs...]",
		Short: "Rebuild artifacts whenever a contract changes",
		Long: `Build once, then rebuild every time an input file changes.

A failed build is reported and watching continues. Stop with Ctrl-C.

Examples:
  solart watch contracts/ -o build/contracts
  solart watch -r src -o out --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params, err := buildParams(app, args, false, nil)
			if err != nil {
				return err
			}

			return runWatch(cmd, app, params, render.NewBuildRenderer(cmd.OutOrStdout(), app.Config.JSON))
		},
	}

	addBuildFlags(cmd)
	cmd.Flags().Duration("debounce", 0, "Wait this long after a change before rebuilding (default 500ms)")

	return cmd
}

// runWatch runs the watch loop until interrupted
func runWatch(cmd *cobra.Command, app *app.App, params usecase.BuildParams, renderer *render.BuildRenderer) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgCyan).Sprint("Watching for changes, press Ctrl-C to stop"))

	return app.WatchContracts.Run(ctx, params, func(result *usecase.BuildResult, err error) {
		if renderErr := renderer.RenderRebuild(time.Now(), result, err); renderErr != nil {
			app.Log.Warn("failed to render build", "error", renderErr)
		}
	})
}
