package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Apply returns the command for provisioning a cluster.
//
// Optional flags:
//
//	--profile, -p: Profile to apply (default: default profile)
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required if not stored in the profile)
func Apply() *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create or update the cluster",
		Long: `Provision the cluster described by a profile.

Creates the private network, the firewall, and one server per broker.
Each server boots with cloud-init user data that runs the kraftner
bootstrap, so brokers come up configured without any further action.

Re-running apply is safe: existing resources are left untouched and
only missing ones are created.

Examples:
  # Apply the default profile
  kraftner apply

  # Apply a specific profile
  kraftner apply -p staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), profileName)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to apply (default: default profile)")

	return cmd
}
