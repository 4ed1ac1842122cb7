package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Health returns the command for checking broker reachability.
//
// Optional flags:
//
//	--profile, -p: Profile to check (default: default profile)
//	--json: Output in JSON format
func Health() *cobra.Command {
	var profileName string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check broker reachability",
		Long: `Probe every broker of the cluster over TCP.

Checks the Kafka client port and SSH on each broker's public address.
The controller port is internal to the private network and is not
probed.

Examples:
  kraftner health
  kraftner health -p staging --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Health(cmd.Context(), profileName, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to check (default: default profile)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
