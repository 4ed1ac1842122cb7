// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic and can be tested independently of
// cobra. External dependencies are created through package-level
// factory variables so tests can inject fakes.
package handlers

import (
	"fmt"
	"os"

	"github.com/kraftner/kraftner/internal/config"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
)

// Factory variables replaced in tests for dependency injection.
var (
	newInfraClient = func(token string) platform.InfrastructureManager {
		return platform.NewRealClient(token)
	}

	loadProfile    = config.LoadProfile
	saveProfile    = config.SaveProfile
	resolveProfile = config.ResolveProfile
)

// loadResolvedProfile resolves the profile name and loads its config,
// filling the API token from the environment when the profile stores
// none.
func loadResolvedProfile(explicit string) (string, *config.Config, error) {
	name, err := resolveProfile(explicit)
	if err != nil {
		return "", nil, err
	}
	cfg, err := loadProfile(name)
	if err != nil {
		return "", nil, err
	}
	if cfg.HCloudToken == "" {
		cfg.HCloudToken = os.Getenv("HCLOUD_TOKEN")
	}
	return name, cfg, nil
}

func requireToken(cfg *config.Config) error {
	if cfg.HCloudToken == "" {
		return fmt.Errorf("no Hetzner Cloud token: set HCLOUD_TOKEN or store it in the profile")
	}
	return nil
}
