package infrastructure

import (
	"fmt"

	"github.com/kraftner/kraftner/internal/provisioning"
	"github.com/kraftner/kraftner/internal/util/labels"
	"github.com/kraftner/kraftner/internal/util/naming"
)

// ProvisionNetwork ensures the private network and the broker subnet.
// Broker addresses are carved out of the subnet by ordinal, so the
// subnet must exist before any server is created.
func (p *Provisioner) ProvisionNetwork(ctx *provisioning.Context) error {
	name := naming.Network(ctx.Config.ClusterName)
	provisioning.LogResourceCreating(ctx.Observer, phase, "network", name)

	networkLabels := labels.NewBuilder(ctx.Config.ClusterName).Build()
	network, err := ctx.Infra.EnsureNetwork(ctx, name, ctx.Config.Network.IPv4CIDR, networkLabels)
	if err != nil {
		return fmt.Errorf("failed to ensure network: %w", err)
	}
	ctx.State.Network = network

	if err := ctx.Infra.EnsureSubnet(ctx, network, ctx.Config.Network.SubnetCIDR, ctx.Config.Network.Zone); err != nil {
		return fmt.Errorf("failed to ensure subnet: %w", err)
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "network", name, fmt.Sprintf("%d", network.ID))
	return nil
}
