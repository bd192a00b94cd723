package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solart/internal/config"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of solart and solc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "solart version %s (commit %s, built %s)\n", config.Version, config.Commit, config.Date)

			app, err := initApp(cmd)
			if err != nil {
				return
			}
			solcVersion, err := app.Compiler.Version(cmd.Context())
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "solc version unknown (%v)\n", err)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "solc version %s\n", solcVersion)
		},
	}
}
