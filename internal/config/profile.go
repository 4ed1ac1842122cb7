package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the top-level ~/.kraftner/config.yaml: tool-wide state, not
// per-cluster configuration.
type Settings struct {
	Version        string `yaml:"version"`
	DefaultProfile string `yaml:"default_profile,omitempty"`
}

const (
	settingsVersion = "1"
	settingsFile    = "config.yaml"
	profilesDir     = "profiles"
)

// Dir returns the configuration directory, honoring KRAFTNER_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("KRAFTNER_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".kraftner"), nil
}

// PrivateKeyPath returns where the generated admin SSH key for a
// cluster lives, next to the profiles. The provisioner writes it, the
// health command reads it to reach brokers.
func PrivateKeyPath(clusterName string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keys", clusterName+"_id_rsa"), nil
}

// EnsureDir creates the configuration directory tree if missing and
// returns its path.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dir, profilesDir), 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// LoadSettings reads config.yaml, returning zero-value settings when the
// file does not exist yet.
func LoadSettings() (*Settings, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if os.IsNotExist(err) {
		return &Settings{Version: settingsVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// SaveSettings writes config.yaml.
func SaveSettings(s *Settings) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}
	if s.Version == "" {
		s.Version = settingsVersion
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, settingsFile), data, 0o600)
}

// ProfilePath returns the path of a named profile file.
func ProfilePath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, profilesDir, name+".yaml"), nil
}

// SaveProfile writes a cluster configuration as a named profile. The
// token is written with restrictive permissions alongside the rest.
func SaveProfile(name string, cfg *Config) error {
	if _, err := EnsureDir(); err != nil {
		return err
	}
	path, err := ProfilePath(name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadProfile reads, defaults, and validates a named profile.
func LoadProfile(name string) (*Config, error) {
	path, err := ProfilePath(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile %q not found (run 'kraftner init' first)", name)
	}
	return LoadFile(path)
}

// DeleteProfile removes a named profile. Deleting the default profile
// also clears the default.
func DeleteProfile(name string) error {
	path, err := ProfilePath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("profile %q not found", name)
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	s, err := LoadSettings()
	if err != nil {
		return err
	}
	if s.DefaultProfile == name {
		s.DefaultProfile = ""
		return SaveSettings(s)
	}
	return nil
}

// ListProfiles returns the sorted names of all stored profiles.
func ListProfiles() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(dir, profilesDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// ResolveProfile picks the profile to operate on: the explicit name if
// given, otherwise the stored default.
func ResolveProfile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	s, err := LoadSettings()
	if err != nil {
		return "", err
	}
	if s.DefaultProfile == "" {
		return "", fmt.Errorf("no profile specified and no default profile set (use --profile or 'kraftner profile use')")
	}
	return s.DefaultProfile, nil
}
