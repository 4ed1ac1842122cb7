package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftner/kraftner/internal/bootstrap"
)

type fakeRunner struct {
	output  string
	err     error
	host    string
	command string
}

func (f *fakeRunner) Execute(_ context.Context, host, command string) (string, error) {
	f.host = host
	f.command = command
	return f.output, f.err
}

func TestRemoteStatusReader_ParsesStatus(t *testing.T) {
	t.Parallel()

	run := &fakeRunner{output: "outcome: ok\nnode_id: 1\nfinished_at: 2026-08-30T12:00:00Z\n"}
	r := RemoteStatusReader{Run: run}

	st, err := r.ReadStatus(context.Background(), "192.0.2.11")
	require.NoError(t, err)
	assert.Equal(t, bootstrap.OutcomeOK, st.Outcome)
	assert.Equal(t, 1, st.NodeID)

	assert.Equal(t, "192.0.2.11", run.host)
	assert.Equal(t, "cat /var/lib/kraftner/status.yaml", run.command)
}

func TestRemoteStatusReader_CommandFailure(t *testing.T) {
	t.Parallel()

	r := RemoteStatusReader{Run: &fakeRunner{err: errors.New("exit status 1")}}
	_, err := r.ReadStatus(context.Background(), "192.0.2.11")
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetching bootstrap status")
}

func TestRemoteStatusReader_RejectsEmptyStatus(t *testing.T) {
	t.Parallel()

	r := RemoteStatusReader{Run: &fakeRunner{output: "node_id: 1\n"}}
	_, err := r.ReadStatus(context.Background(), "192.0.2.11")
	require.Error(t, err)
	assert.ErrorContains(t, err, "no outcome")
}
