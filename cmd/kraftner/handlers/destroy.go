package handlers

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/ui"
	"github.com/kraftner/kraftner/internal/util/labels"
)

// confirmDestroy is swappable in tests.
var confirmDestroy = func(clusterName string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete all resources of cluster %q?", clusterName)).
		Description("Broker data will be lost permanently.").
		Value(&confirmed).
		Run()
	return confirmed, err
}

// Destroy deletes every cloud resource belonging to the cluster.
func Destroy(ctx context.Context, profileName string, force bool) error {
	_, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	if !force {
		if !config.IsInteractive() {
			return fmt.Errorf("refusing to destroy without confirmation, use --force")
		}
		confirmed, err := confirmDestroy(cfg.ClusterName)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("aborted")
			return nil
		}
	}

	infra := newInfraClient(cfg.HCloudToken)
	selector := labels.ClusterSelector(cfg.ClusterName)
	if err := infra.CleanupBySelector(ctx, selector); err != nil {
		return fmt.Errorf("destroying cluster %s: %w", cfg.ClusterName, err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("cluster %s destroyed", cfg.ClusterName)))
	return nil
}
