package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureNetwork returns the named network, creating it when missing. An
// existing network with a different IP range is an error, not an update:
// resizing a live cluster network is not supported.
func (c *RealClient) EnsureNetwork(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error) {
	existing, _, err := c.client.Network.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up network %s: %w", name, err)
	}
	if existing != nil {
		if existing.IPRange.String() != ipRange {
			return nil, fmt.Errorf("network %s exists with IP range %s (expected %s)", name, existing.IPRange, ipRange)
		}
		return existing, nil
	}

	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return nil, fmt.Errorf("invalid network range %q: %w", ipRange, err)
	}

	network, _, err := c.client.Network.Create(ctx, hcloud.NetworkCreateOpts{
		Name:    name,
		IPRange: ipNet,
		Labels:  labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create network %s: %w", name, err)
	}
	return network, nil
}

// EnsureSubnet adds the subnet to the network if it is not present yet.
func (c *RealClient) EnsureSubnet(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error {
	for _, subnet := range network.Subnets {
		if subnet.IPRange.String() == ipRange {
			return nil
		}
	}

	_, ipNet, err := net.ParseCIDR(ipRange)
	if err != nil {
		return fmt.Errorf("invalid subnet range %q: %w", ipRange, err)
	}

	action, _, err := c.client.Network.AddSubnet(ctx, network, hcloud.NetworkAddSubnetOpts{
		Subnet: hcloud.NetworkSubnet{
			Type:        hcloud.NetworkSubnetTypeCloud,
			IPRange:     ipNet,
			NetworkZone: hcloud.NetworkZone(networkZone),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add subnet to network %s: %w", network.Name, err)
	}
	if err := c.client.Action.WaitFor(ctx, action); err != nil {
		return fmt.Errorf("failed waiting for subnet creation: %w", err)
	}
	return nil
}

// GetNetwork returns the named network, or nil when it does not exist.
func (c *RealClient) GetNetwork(ctx context.Context, name string) (*hcloud.Network, error) {
	network, _, err := c.client.Network.Get(ctx, name)
	return network, err
}

// DeleteNetwork deletes the named network. Deleting a missing network is
// not an error.
func (c *RealClient) DeleteNetwork(ctx context.Context, name string) error {
	return c.deleteByName(ctx, "network", name,
		func(ctx context.Context, name string) (deletable, error) {
			n, _, err := c.client.Network.Get(ctx, name)
			if n == nil {
				return nil, err
			}
			return deleteFunc(func(ctx context.Context) error {
				_, err := c.client.Network.Delete(ctx, n)
				return err
			}), err
		})
}
