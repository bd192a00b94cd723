package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solart/internal/adapters/progress"
	"github.com/trebuchet-org/solart/internal/app"
	"github.com/trebuchet-org/solart/internal/config"
	"github.com/trebuchet-org/solart/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solart",
		Short: "Compile Solidity contracts into JSON artifacts",
		Long: `solart runs solc on your contracts and turns its text output into JSON
artifacts holding the ABI, bytecode, gas estimates and deployed addresses.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			appInstance, err := initApp(cmd)
			if err != nil {
				return err
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().String("solc", "", "Path to the solc executable (default \"solc\")")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	buildCmd := NewBuildCmd()
	buildCmd.GroupID = "main"
	rootCmd.AddCommand(buildCmd)

	watchCmd := NewWatchCmd()
	watchCmd.GroupID = "main"
	rootCmd.AddCommand(watchCmd)

	showCmd := NewShowCmd()
	showCmd.GroupID = "main"
	rootCmd.AddCommand(showCmd)

	networkCmd := NewNetworkCmd()
	networkCmd.GroupID = "management"
	rootCmd.AddCommand(networkCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initApp resolves configuration for cmd and wires the application
func initApp(cmd *cobra.Command) (*app.App, error) {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		// Plain directories work too, settings then come from flags and env
		projectRoot = ""
	}

	v := config.SetupViper(projectRoot)
	config.BindFlags(v, cmd)

	appInstance, err := app.InitApp(v, newProgressSink(v))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return appInstance, nil
}

// newProgressSink picks a spinner for terminals and plain messages otherwise
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("non_interactive") || v.GetBool("json") {
		return progress.NewPlainSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
