package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kraftner/kraftner/internal/config"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
	"github.com/kraftner/kraftner/internal/util/naming"
	"github.com/kraftner/kraftner/internal/util/retry"
)

// ErrPeerUnresolved marks a peer lookup that failed for a reason that
// is expected to clear on its own: the instance exists in the cluster
// plan but its address is not yet visible. Callers retry on it.
var ErrPeerUnresolved = errors.New("peer address not yet resolvable")

// PeerDirectory resolves the private address of a broker by its
// ordinal. Implementations may consult cloud metadata, the provider
// API, or the deterministic address plan.
type PeerDirectory interface {
	PeerAddress(ctx context.Context, ordinal int) (string, error)
}

// PlanDirectory derives peer addresses from the cluster's subnet plan.
// Addresses are reserved per ordinal at provisioning time, so every
// broker can compute the full quorum without any peer being up yet.
type PlanDirectory struct {
	SubnetCIDR string
}

func (d PlanDirectory) PeerAddress(_ context.Context, ordinal int) (string, error) {
	addr, err := config.BrokerAddress(d.SubnetCIDR, ordinal)
	if err != nil {
		return "", err
	}
	return addr, nil
}

// CloudDirectory resolves peers by looking their instances up in the
// cloud API. A peer whose instance does not exist yet, or exists but is
// not attached to the private network yet, is reported as unresolved so
// the rendezvous keeps waiting for it.
type CloudDirectory struct {
	Servers     platform.ServerManager
	ClusterName string
}

func (d CloudDirectory) PeerAddress(ctx context.Context, ordinal int) (string, error) {
	srv, err := d.Servers.GetServerByName(ctx, naming.Broker(d.ClusterName, ordinal))
	if err != nil {
		return "", fmt.Errorf("looking up peer %d: %w", ordinal, err)
	}
	if srv == nil {
		return "", fmt.Errorf("peer %d: %w", ordinal, ErrPeerUnresolved)
	}
	for _, net := range srv.PrivateNet {
		if net.IP != nil {
			return net.IP.String(), nil
		}
	}
	return "", fmt.Errorf("peer %d has no private address: %w", ordinal, ErrPeerUnresolved)
}

// quorumPolicy bounds the rendezvous: with the plan-derived directory
// resolution is immediate, but a directory backed by the provider API
// can lag behind instance creation by a minute or two.
var quorumPolicy = []retry.Option{
	retry.Attempts(10),
	retry.InitialDelay(2 * time.Second),
	retry.MaxDelay(30 * time.Second),
}

// ResolveQuorum resolves every peer of an N-broker cluster and returns
// the complete voter set. Individual unresolved peers are retried with
// backoff; any other resolution error aborts immediately. The returned
// slice is complete or the error is non-nil — a partial quorum is never
// handed to the caller.
func ResolveQuorum(ctx context.Context, dir PeerDirectory, count int) ([]Peer, error) {
	peers := make([]Peer, 0, count)
	for ordinal := 0; ordinal < count; ordinal++ {
		ordinal := ordinal
		var addr string
		err := retry.Do(ctx, func() error {
			a, err := dir.PeerAddress(ctx, ordinal)
			if err != nil {
				if errors.Is(err, ErrPeerUnresolved) {
					return err
				}
				return retry.Permanent(err)
			}
			addr = a
			return nil
		}, quorumPolicy...)
		if err != nil {
			return nil, fmt.Errorf("resolving peer %d of %d: %w", ordinal, count, err)
		}
		peers = append(peers, Peer{ID: ordinal, Address: addr})
	}
	return peers, nil
}
