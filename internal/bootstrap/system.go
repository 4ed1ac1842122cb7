package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// System abstracts the host-level operations the coordinator performs,
// so the sequencing logic can be tested without a root shell.
type System interface {
	// EnsureUser creates a system user if it does not exist.
	EnsureUser(ctx context.Context, name string) error
	// EnsureDirs creates directories owned by owner.
	EnsureDirs(ctx context.Context, owner string, paths ...string) error
	// InstallDeps installs the packages Kafka needs (a JRE).
	InstallDeps(ctx context.Context) error
	// WriteFile writes a file with the given mode, creating parents.
	WriteFile(path string, data []byte, mode os.FileMode) error
	// InstallUnit writes a systemd unit and reloads the daemon.
	InstallUnit(ctx context.Context, name string, unit []byte) error
	// EnableUnit enables and starts a systemd unit.
	EnableUnit(ctx context.Context, name string) error
	// FormatStorage runs the Kafka storage formatter against the log
	// dir configured in configPath.
	FormatStorage(ctx context.Context, installDir, configPath, clusterID string) error
}

// HostSystem implements System with real commands. Every operation is
// idempotent: re-running a completed step is a no-op, not an error.
type HostSystem struct{}

var _ System = HostSystem{}

func (HostSystem) EnsureUser(ctx context.Context, name string) error {
	if _, err := user.Lookup(name); err == nil {
		return nil
	}
	return run(ctx, "useradd", "--system", "--no-create-home", "--shell", "/usr/sbin/nologin", name)
}

func (HostSystem) EnsureDirs(ctx context.Context, owner string, paths ...string) error {
	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", p, err)
		}
		if err := run(ctx, "chown", "-R", owner+":"+owner, p); err != nil {
			return err
		}
	}
	return nil
}

func (HostSystem) InstallDeps(ctx context.Context) error {
	if err := run(ctx, "apt-get", "update", "-q"); err != nil {
		return err
	}
	return run(ctx, "apt-get", "install", "-y", "-q", "openjdk-17-jre-headless")
}

func (HostSystem) WriteFile(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s HostSystem) InstallUnit(ctx context.Context, name string, unit []byte) error {
	if err := s.WriteFile(filepath.Join("/etc/systemd/system", name), unit, 0o644); err != nil {
		return err
	}
	return run(ctx, "systemctl", "daemon-reload")
}

func (HostSystem) EnableUnit(ctx context.Context, name string) error {
	return run(ctx, "systemctl", "enable", "--now", name)
}

func (HostSystem) FormatStorage(ctx context.Context, installDir, configPath, clusterID string) error {
	tool := filepath.Join(installDir, "bin", "kafka-storage.sh")
	return run(ctx, tool, "format", "--cluster-id", clusterID, "--config", configPath)
}

func run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
