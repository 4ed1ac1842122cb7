package handlers

import (
	"context"
	"fmt"

	"github.com/kraftner/kraftner/internal/provisioning"
	"github.com/kraftner/kraftner/internal/provisioning/compute"
	"github.com/kraftner/kraftner/internal/provisioning/infrastructure"
	"github.com/kraftner/kraftner/internal/ui"
)

// runPhases is swappable in tests.
var runPhases = provisioning.RunPhases

// Apply provisions the cluster described by the profile.
func Apply(ctx context.Context, profileName string) error {
	name, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	infra := newInfraClient(cfg.HCloudToken)
	pctx := provisioning.NewContext(ctx, cfg, infra)

	phases := []provisioning.Phase{
		provisioning.NewValidationPhase(),
		infrastructure.NewProvisioner(),
		compute.NewProvisioner(),
	}
	if err := runPhases(pctx, phases); err != nil {
		return err
	}

	// Apply may have generated an SSH key; keep the profile in sync so
	// destroy and later applies see the same key.
	if err := saveProfile(name, cfg); err != nil {
		return fmt.Errorf("updating profile %s: %w", name, err)
	}

	fmt.Println(ui.ApplySummary(cfg.ClusterName, pctx.State.BrokerIPs))
	return nil
}
