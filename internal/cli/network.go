package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solart/internal/cli/render"
)

// NewNetworkCmd creates the network command group
func NewNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Manage deployed addresses stored in artifacts",
	}

	cmd.AddCommand(newNetworkSetCmd())
	cmd.AddCommand(newNetworkGetCmd())

	return cmd
}

func newNetworkSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <artifact> <network-id> <address>",
		Short: "Record the address a contract is deployed at",
		Long: `Record the address a contract is deployed at on a network. An existing
address for the same network is replaced.

Example:
  solart network set build/contracts/Token.json 1 0x5FbDB2315678afecb367f032d93F642f64180aa3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contract, err := app.ManageNetworks.Set(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			address, _ := contract.Address(args[1])
			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(
				fmt.Sprintf("%s on network %s is at %s", contract.Name(), args[1], address.Hex())))
			return nil
		},
	}
}

func newNetworkGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <artifact> <network-id>",
		Short: "Print the address a contract is deployed at",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			address, err := app.ManageNetworks.Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), address.Hex())
			return nil
		},
	}
}
