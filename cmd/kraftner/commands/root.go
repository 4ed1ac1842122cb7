// Package commands defines the CLI command structure and flag bindings.
//
// Command definitions handle argument parsing and flag binding only;
// execution is delegated to the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the kraftner CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kraftner",
		Short: "Provision KRaft-mode Kafka clusters on Hetzner Cloud",
	}

	// Cluster lifecycle
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Health())
	cmd.AddCommand(Destroy())

	// Profiles and addons
	cmd.AddCommand(Profile())
	cmd.AddCommand(Addons())

	// Runs on the broker VM, not the operator's machine.
	cmd.AddCommand(Bootstrap())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
