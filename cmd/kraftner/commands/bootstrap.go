package commands

import (
	"github.com/spf13/cobra"

	"github.com/kraftner/kraftner/cmd/kraftner/handlers"
	"github.com/kraftner/kraftner/internal/bootstrap"
)

// Bootstrap returns the command run by cloud-init on each broker VM.
// It is not meant to be invoked on an operator's machine.
//
// Optional flags:
//
//	--config: Path to the bootstrap config (default: /etc/kraftner/bootstrap.yaml)
func Bootstrap() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:    "bootstrap",
		Short:  "Configure this VM as a Kafka broker (runs at first boot)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Bootstrap(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", bootstrap.DefaultConfigPath, "Path to the bootstrap config")

	return cmd
}
