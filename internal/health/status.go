package health

import (
	"context"
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/kraftner/kraftner/internal/bootstrap"
)

// CommandRunner executes a command on a broker, SSH in production.
type CommandRunner interface {
	Execute(ctx context.Context, host, command string) (string, error)
}

// StatusReader fetches the terminal status a broker recorded at the
// end of its bootstrap run.
type StatusReader interface {
	ReadStatus(ctx context.Context, address string) (bootstrap.Status, error)
}

// RemoteStatusReader reads the status file off the broker itself.
type RemoteStatusReader struct {
	Run CommandRunner
}

// ReadStatus fetches and parses the broker's status file.
func (r RemoteStatusReader) ReadStatus(ctx context.Context, address string) (bootstrap.Status, error) {
	out, err := r.Run.Execute(ctx, address, "cat "+path.Join(bootstrap.DefaultStateDir, bootstrap.StatusFile))
	if err != nil {
		return bootstrap.Status{}, fmt.Errorf("fetching bootstrap status: %w", err)
	}

	var st bootstrap.Status
	if err := yaml.Unmarshal([]byte(out), &st); err != nil {
		return bootstrap.Status{}, fmt.Errorf("parsing bootstrap status: %w", err)
	}
	if st.Outcome == "" {
		return bootstrap.Status{}, fmt.Errorf("bootstrap status has no outcome")
	}
	return st, nil
}
