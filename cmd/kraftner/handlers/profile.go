package handlers

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/ui"
)

// ProfileList prints the stored profiles, marking the default.
func ProfileList(_ context.Context) error {
	profiles, err := config.ListProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println(ui.Dim("no profiles, run 'kraftner init' to create one"))
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	for _, name := range profiles {
		marker := "  "
		if name == settings.DefaultProfile {
			marker = "* "
		}
		fmt.Println(marker + name)
	}
	return nil
}

// ProfileShow prints a profile with the API token redacted.
func ProfileShow(_ context.Context, name string) error {
	resolved, err := resolveProfile(name)
	if err != nil {
		return err
	}
	cfg, err := loadProfile(resolved)
	if err != nil {
		return err
	}

	if cfg.HCloudToken != "" {
		cfg.HCloudToken = "<redacted>"
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Println(ui.Title(resolved))
	_, err = os.Stdout.Write(out)
	return err
}

// ProfileUse sets the default profile.
func ProfileUse(_ context.Context, name string) error {
	if _, err := loadProfile(name); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	settings.DefaultProfile = name
	if err := config.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("default profile set to %s", name)))
	return nil
}

// ProfileDelete removes a stored profile.
func ProfileDelete(_ context.Context, name string) error {
	if err := config.DeleteProfile(name); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("profile %s deleted", name)))
	return nil
}
