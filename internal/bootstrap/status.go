package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Outcome classifies how a bootstrap run ended. Operators and the
// health command read it off the instance instead of grepping logs.
type Outcome string

const (
	// OutcomeOK means the broker is fully configured and its service
	// is enabled and started.
	OutcomeOK Outcome = "ok"
	// OutcomeConfigError means the bootstrap config itself is invalid.
	// Re-running without fixing the config will fail the same way.
	OutcomeConfigError Outcome = "config-error"
	// OutcomeTransientError means an environmental step failed after
	// exhausting retries (download, system command). A re-run may succeed.
	OutcomeTransientError Outcome = "transient-error"
	// OutcomeQuorumIncomplete means the full voter set could not be
	// resolved or verified. The broker refused to start with a partial
	// quorum.
	OutcomeQuorumIncomplete Outcome = "quorum-incomplete"
)

// StatusFile is the name of the terminal status file under the state
// dir. External checks read it off the instance.
const StatusFile = "status.yaml"

// Status is the terminal record of a bootstrap run.
type Status struct {
	Outcome    Outcome   `yaml:"outcome"`
	NodeID     int       `yaml:"node_id"`
	Message    string    `yaml:"message,omitempty"`
	FinishedAt time.Time `yaml:"finished_at"`
}

// WriteStatus persists the terminal status under dir. It overwrites any
// status from a previous run.
func WriteStatus(dir string, st Status) error {
	if st.FinishedAt.IsZero() {
		st.FinishedAt = time.Now().UTC()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating status dir: %w", err)
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, StatusFile), data, 0o644); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}
	return nil
}

// ReadStatus loads the terminal status of the last bootstrap run.
func ReadStatus(dir string) (Status, error) {
	var st Status
	data, err := os.ReadFile(filepath.Join(dir, StatusFile))
	if err != nil {
		return st, fmt.Errorf("reading status: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parsing status: %w", err)
	}
	return st, nil
}
