package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Profile returns the command group for managing stored profiles.
func Profile() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage cluster profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ProfileList(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return handlers.ProfileShow(cmd.Context(), name)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <name>",
		Short: "Set the default profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ProfileUse(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.ProfileDelete(cmd.Context(), args[0])
		},
	})

	return cmd
}
