package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraftner/kraftner/internal/util/retry"
)

// fastQuorumPolicy keeps rendezvous tests from sleeping for real.
func fastQuorumPolicy(t *testing.T) {
	t.Helper()
	saved := quorumPolicy
	quorumPolicy = []retry.Option{
		retry.Attempts(3),
		retry.InitialDelay(time.Millisecond),
		retry.MaxDelay(5 * time.Millisecond),
	}
	t.Cleanup(func() { quorumPolicy = saved })
}

type fakeDirectory struct {
	// unresolvedUntil maps ordinal to the number of lookups that report
	// the peer as unresolved before it resolves.
	unresolvedUntil map[int]int
	failOrdinal     int
	failErr         error
	calls           map[int]int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		unresolvedUntil: map[int]int{},
		failOrdinal:     -1,
		calls:           map[int]int{},
	}
}

func (d *fakeDirectory) PeerAddress(_ context.Context, ordinal int) (string, error) {
	d.calls[ordinal]++
	if d.failErr != nil && ordinal == d.failOrdinal {
		return "", d.failErr
	}
	if d.calls[ordinal] <= d.unresolvedUntil[ordinal] {
		return "", fmt.Errorf("peer %d: %w", ordinal, ErrPeerUnresolved)
	}
	return fmt.Sprintf("10.0.1.%d", 10+ordinal), nil
}

func TestPlanDirectory_Deterministic(t *testing.T) {
	t.Parallel()

	dir := PlanDirectory{SubnetCIDR: "10.0.1.0/24"}
	ctx := context.Background()

	first, err := dir.PeerAddress(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.10", first)

	second, err := dir.PeerAddress(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "10.0.1.12", second)

	again, err := dir.PeerAddress(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestResolveQuorum_WaitsForLatePeer(t *testing.T) {
	fastQuorumPolicy(t)

	dir := newFakeDirectory()
	dir.unresolvedUntil[1] = 2

	peers, err := ResolveQuorum(context.Background(), dir, 3)
	require.NoError(t, err)
	require.Len(t, peers, 3)
	assert.Equal(t, Peer{ID: 1, Address: "10.0.1.11"}, peers[1])
	assert.Equal(t, 3, dir.calls[1])
}

func TestResolveQuorum_NeverReturnsPartialSet(t *testing.T) {
	fastQuorumPolicy(t)

	dir := newFakeDirectory()
	dir.unresolvedUntil[2] = 100

	peers, err := ResolveQuorum(context.Background(), dir, 3)
	require.Error(t, err)
	assert.Nil(t, peers)
	assert.ErrorIs(t, err, ErrPeerUnresolved)
}

func TestResolveQuorum_PermanentFailureAbortsImmediately(t *testing.T) {
	fastQuorumPolicy(t)

	dir := newFakeDirectory()
	dir.failOrdinal = 1
	dir.failErr = errors.New("unauthorized")

	_, err := ResolveQuorum(context.Background(), dir, 3)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unauthorized")
	assert.Equal(t, 1, dir.calls[1])
}
