package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Destroy returns the command for tearing a cluster down.
//
// Optional flags:
//
//	--profile, -p: Profile to destroy (default: default profile)
//	--force, -f: Skip the confirmation prompt
func Destroy() *cobra.Command {
	var profileName string
	var force bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete all cluster resources",
		Long: `Delete every cloud resource belonging to the cluster.

Servers, firewall, network, and the generated SSH key are removed by
label selector, so resources created outside kraftner are never
touched. Broker data is lost permanently.

Examples:
  kraftner destroy
  kraftner destroy -p staging --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), profileName, force)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to destroy (default: default profile)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
