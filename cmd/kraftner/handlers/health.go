package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/health"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
	"github.com/kraftner/kraftner/internal/ssh"
	"github.com/kraftner/kraftner/internal/ui"
)

// newChecker is swappable in tests.
var newChecker = func(servers platform.ServerManager) *health.Checker {
	return health.NewChecker(servers)
}

// newStatusReader builds a bootstrap status reader from the cluster's
// generated admin key. Returns nil when no key is available — the
// brokers may have been provisioned with a pre-existing key — in which
// case the report carries port checks only.
var newStatusReader = func(clusterName string) health.StatusReader {
	path, err := config.PrivateKeyPath(clusterName)
	if err != nil {
		return nil
	}
	key, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	runner, err := ssh.NewRunner(key)
	if err != nil {
		return nil
	}
	return health.RemoteStatusReader{Run: runner}
}

// Health probes every broker of the cluster and prints a report.
// Returns an error when any broker is unreachable so scripts can rely
// on the exit code.
func Health(ctx context.Context, profileName string, jsonOutput bool) error {
	_, cfg, err := loadResolvedProfile(profileName)
	if err != nil {
		return err
	}
	if err := requireToken(cfg); err != nil {
		return err
	}

	checker := newChecker(newInfraClient(cfg.HCloudToken))
	checker.Status = newStatusReader(cfg.ClusterName)
	report, err := checker.Check(ctx, cfg.ClusterName)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Println(ui.HealthReport(report))
	}

	if !report.Healthy() {
		return fmt.Errorf("cluster %s is unhealthy", cfg.ClusterName)
	}
	return nil
}
