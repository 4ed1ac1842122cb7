package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSystem records host operations instead of executing them. A
// single instance can be shared across simulated brokers; counters are
// guarded so concurrent bootstrap runs can be exercised.
type fakeSystem struct {
	mu sync.Mutex

	depsInstalls int
	formats      int
	enabled      []string
	files        map[string][]byte
	writeErr     error
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{files: map[string][]byte{}}
}

func (s *fakeSystem) EnsureUser(context.Context, string) error { return nil }

func (s *fakeSystem) EnsureDirs(context.Context, string, ...string) error { return nil }

func (s *fakeSystem) InstallDeps(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depsInstalls++
	return nil
}

func (s *fakeSystem) WriteFile(path string, data []byte, _ os.FileMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[path] = data
	return nil
}

func (s *fakeSystem) InstallUnit(_ context.Context, name string, unit []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[filepath.Join("/etc/systemd/system", name)] = unit
	return nil
}

func (s *fakeSystem) EnableUnit(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = append(s.enabled, name)
	return nil
}

func (s *fakeSystem) FormatStorage(context.Context, string, string, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats++
	return nil
}

func (s *fakeSystem) file(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.files[path])
}

func testConfig() Config {
	return Config{
		ClusterName:       "demo",
		BrokerCount:       3,
		SubnetCIDR:        "10.0.1.0/24",
		KafkaVersion:      "3.6.0",
		Partitions:        3,
		ReplicationFactor: 3,
		MinInsyncReplicas: 2,
	}
}

func testCoordinator(t *testing.T, sys System, hostname string) *Coordinator {
	t.Helper()
	return &Coordinator{
		System:   sys,
		Peers:    PlanDirectory{SubnetCIDR: "10.0.1.0/24"},
		StateDir: t.TempDir(),
		Hostname: func() (string, error) { return hostname, nil },
		Fetch:    func(context.Context, string, string) error { return nil },
	}
}

func TestCoordinator_RendersExpectedConfig(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-1")

	require.NoError(t, c.Run(context.Background(), testConfig()))

	props := sys.file(serverConfig)
	assert.Contains(t, props, "node.id=1")
	assert.Contains(t, props, "controller.quorum.voters=0@10.0.1.10:9093,1@10.0.1.11:9093,2@10.0.1.12:9093")
	assert.Contains(t, props, "advertised.listeners=PLAINTEXT://10.0.1.11:9092")

	assert.Equal(t, []string{serviceName}, sys.enabled)

	st, err := ReadStatus(c.StateDir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeOK, st.Outcome)
	assert.Equal(t, 1, st.NodeID)
}

func TestCoordinator_OnlyFirstNodeFormats(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	systems := make([]*fakeSystem, cfg.BrokerCount)

	for ordinal := 0; ordinal < cfg.BrokerCount; ordinal++ {
		sys := newFakeSystem()
		systems[ordinal] = sys
		c := testCoordinator(t, sys, fmt.Sprintf("demo-broker-%d", ordinal))
		require.NoError(t, c.Run(context.Background(), cfg))
	}

	totalFormats := 0
	for _, sys := range systems {
		totalFormats += sys.formats
	}
	assert.Equal(t, 1, totalFormats)
	assert.Equal(t, 1, systems[0].formats)
}

func TestCoordinator_ResumeSkipsCompletedSteps(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-0")
	cfg := testConfig()

	require.NoError(t, c.Run(context.Background(), cfg))
	require.NoError(t, c.Run(context.Background(), cfg))

	assert.Equal(t, 1, sys.depsInstalls)
	assert.Equal(t, 1, sys.formats)
	assert.Equal(t, []string{serviceName}, sys.enabled)
}

func TestCoordinator_QuorumIncompleteWritesNoConfig(t *testing.T) {
	fastQuorumPolicy(t)

	dir := newFakeDirectory()
	dir.unresolvedUntil[2] = 100

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-0")
	c.Peers = dir

	err := c.Run(context.Background(), testConfig())
	require.Error(t, err)

	st, readErr := ReadStatus(c.StateDir)
	require.NoError(t, readErr)
	assert.Equal(t, OutcomeQuorumIncomplete, st.Outcome)

	assert.Empty(t, sys.file(serverConfig))
	assert.Empty(t, sys.enabled)
	assert.Zero(t, sys.formats)
}

func TestCoordinator_DuplicatePeerAddressIsQuorumIncomplete(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-0")
	c.Peers = staticDirectory("10.0.1.10")

	err := c.Run(context.Background(), testConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "duplicate voter address")

	st, readErr := ReadStatus(c.StateDir)
	require.NoError(t, readErr)
	assert.Equal(t, OutcomeQuorumIncomplete, st.Outcome)
}

func TestCoordinator_InvalidConfigIsConfigError(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-0")

	cfg := testConfig()
	cfg.BrokerCount = 0

	err := c.Run(context.Background(), cfg)
	require.Error(t, err)

	st, readErr := ReadStatus(c.StateDir)
	require.NoError(t, readErr)
	assert.Equal(t, OutcomeConfigError, st.Outcome)
	assert.Equal(t, -1, st.NodeID)
}

func TestCoordinator_ConfigWriteFailureIsTransient(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	sys.writeErr = errors.New("no space left on device")
	c := testCoordinator(t, sys, "demo-broker-1")

	err := c.Run(context.Background(), testConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no space left")

	// A full disk is the host's problem, not the config's: a re-run
	// may succeed, so the status must not claim a config error.
	st, readErr := ReadStatus(c.StateDir)
	require.NoError(t, readErr)
	assert.Equal(t, OutcomeTransientError, st.Outcome)
}

func TestCoordinator_OrdinalBeyondClusterSize(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := testCoordinator(t, sys, "demo-broker-7")

	err := c.Run(context.Background(), testConfig())
	require.Error(t, err)
	assert.ErrorContains(t, err, "out of range")
}

// staticDirectory resolves every ordinal to the same address, which the
// voter verification must reject.
type staticDirectory string

func (d staticDirectory) PeerAddress(context.Context, int) (string, error) {
	return string(d), nil
}

func TestProgress_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p, err := LoadProgress(dir)
	require.NoError(t, err)
	assert.False(t, p.Done(StepDepsInstalled))

	require.NoError(t, p.Record(StepDepsInstalled))
	require.NoError(t, p.Record(StepConfigWritten))
	require.NoError(t, p.Record(StepConfigWritten))

	reloaded, err := LoadProgress(dir)
	require.NoError(t, err)
	assert.True(t, reloaded.Done(StepDepsInstalled))
	assert.True(t, reloaded.Done(StepConfigWritten))
	assert.False(t, reloaded.Done(StepFormatted))
	assert.Len(t, reloaded.Completed, 2)
}

func TestStatus_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, WriteStatus(dir, Status{
		Outcome: OutcomeTransientError,
		NodeID:  2,
		Message: "download failed",
	}))

	st, err := ReadStatus(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTransientError, st.Outcome)
	assert.Equal(t, 2, st.NodeID)
	assert.True(t, strings.Contains(st.Message, "download"))
	assert.False(t, st.FinishedAt.IsZero())
}
