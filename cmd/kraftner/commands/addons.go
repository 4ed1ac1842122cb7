package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
)

// Addons returns the command group for managing cluster addons.
//
// Addons (Kafka UI, metrics exporter, schema registry, monitoring) are
// deployed into an existing Kubernetes cluster, not onto the broker
// VMs. The profile's kubeconfig_path points at that cluster.
func Addons() *cobra.Command {
	var profileName string
	var kubeconfigPath string

	cmd := &cobra.Command{
		Use:   "addons",
		Short: "Manage Kafka ecosystem addons",
	}

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Install enabled addons",
		Long: `Install the addons enabled in the profile into the Kubernetes
cluster behind the profile's kubeconfig.

Examples:
  kraftner addons apply
  kraftner addons apply -p staging --kubeconfig ~/.kube/config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AddonsApply(cmd.Context(), profileName, kubeconfigPath)
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Uninstall enabled addons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AddonsRemove(cmd.Context(), profileName, kubeconfigPath)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show addon toggles and deployed status",
		Long: `Show every known addon, whether it is enabled in the profile, and
the status of its release in the Kubernetes cluster.

Examples:
  kraftner addons list
  kraftner addons list -p staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.AddonsList(cmd.Context(), profileName, kubeconfigPath)
		},
	}

	for _, sub := range []*cobra.Command{applyCmd, removeCmd, listCmd} {
		sub.Flags().StringVarP(&profileName, "profile", "p", "", "Profile to use (default: default profile)")
		sub.Flags().StringVar(&kubeconfigPath, "kubeconfig", "", "Path to kubeconfig (default: profile's kubeconfig_path)")
		cmd.AddCommand(sub)
	}

	return cmd
}
