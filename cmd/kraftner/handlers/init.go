package handlers

import (
	"context"
	"fmt"

	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/ui"
)

// runWizard is swappable in tests.
var runWizard = config.RunWizard

// Init creates a new cluster profile. In a terminal the interactive
// wizard collects the configuration; otherwise a profile with defaults
// is written for hand editing.
func Init(ctx context.Context, profileName string) error {
	var cfg *config.Config
	var err error

	if config.IsInteractive() {
		cfg, err = runWizard(ctx)
		if err != nil {
			return err
		}
	} else {
		cfg = &config.Config{ClusterName: "kafka"}
		if profileName != "" {
			cfg.ClusterName = profileName
		}
		config.ApplyDefaults(cfg)
	}

	name := profileName
	if name == "" {
		name = cfg.ClusterName
	}

	if err := saveProfile(name, cfg); err != nil {
		return err
	}

	// The first profile becomes the default.
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if settings.DefaultProfile == "" {
		settings.DefaultProfile = name
		if err := config.SaveSettings(settings); err != nil {
			return err
		}
	}

	path, err := config.ProfilePath(name)
	if err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("profile %s written to %s", name, path)))
	fmt.Println(ui.Dim("Run 'kraftner apply' to provision the cluster."))
	return nil
}
