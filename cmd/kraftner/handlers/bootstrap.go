package handlers

import (
	"context"

	"github.com/kraftner/kraftner/internal/bootstrap"
)

// newCoordinator is swappable in tests.
var newCoordinator = func(cfg bootstrap.Config) *bootstrap.Coordinator {
	return bootstrap.NewCoordinator(cfg)
}

// Bootstrap configures this VM as a Kafka broker. It is invoked by
// cloud-init at first boot and may be re-run manually after a failure;
// completed steps are skipped on re-runs.
func Bootstrap(ctx context.Context, configPath string) error {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	return newCoordinator(*cfg).Run(ctx, *cfg)
}
