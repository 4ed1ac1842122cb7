package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Step is a completed stage of the bootstrap sequence. Steps are
// recorded after they finish so a re-run after a crash or reboot
// resumes instead of repeating work that is not idempotent.
type Step string

const (
	StepDepsInstalled     Step = "deps-installed"
	StepDistributionReady Step = "distribution-ready"
	StepConfigWritten     Step = "config-written"
	StepServiceEnabled    Step = "service-enabled"
	StepFormatted         Step = "formatted"
)

// DefaultStateDir holds bootstrap progress and the terminal status file.
const DefaultStateDir = "/var/lib/kraftner"

// Progress tracks which steps have completed on this broker.
type Progress struct {
	Completed []Step `yaml:"completed"`

	path string
}

// LoadProgress reads recorded progress from dir, returning empty
// progress when no state file exists yet.
func LoadProgress(dir string) (*Progress, error) {
	p := &Progress{path: filepath.Join(dir, "state.yaml")}
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bootstrap state: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing bootstrap state: %w", err)
	}
	return p, nil
}

// Done reports whether step has already completed.
func (p *Progress) Done(step Step) bool {
	for _, s := range p.Completed {
		if s == step {
			return true
		}
	}
	return false
}

// Record marks step complete and persists the state file immediately,
// so a crash between steps never loses a completed stage.
func (p *Progress) Record(step Step) error {
	if p.Done(step) {
		return nil
	}
	p.Completed = append(p.Completed, step)

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding bootstrap state: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("writing bootstrap state: %w", err)
	}
	return nil
}
