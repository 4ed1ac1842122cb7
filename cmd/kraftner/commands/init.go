package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Init returns the command for creating a cluster profile.
//
// Running interactively starts a wizard; otherwise a profile with
// defaults is written and can be edited by hand.
//
// Optional flags:
//
//	--name, -n: Profile name (default: cluster name)
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token
func Init() *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cluster profile",
		Long: `Create a new cluster profile under ~/.kraftner/profiles.

In a terminal this starts an interactive wizard asking for cluster
name, location, broker topology, and Kafka settings. The first profile
created becomes the default profile.

Examples:
  # Interactive setup
  kraftner init

  # Store the profile under a specific name
  kraftner init -n staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), profileName)
		},
	}

	cmd.Flags().StringVarP(&profileName, "name", "n", "", "Profile name (default: cluster name)")

	return cmd
}
