// Package compute provisions the broker servers. Each broker gets a
// deterministic name and private address derived from its ordinal, so
// the on-VM bootstrap can recompute the full quorum without asking
// anyone.
package compute

import (
	"fmt"

	"github.com/kraftner/kraftner/internal/config"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
	"github.com/kraftner/kraftner/internal/provisioning"
	"github.com/kraftner/kraftner/internal/util/labels"
	"github.com/kraftner/kraftner/internal/util/naming"
)

const phase = "compute"

// Provisioner creates the broker servers.
type Provisioner struct{}

// NewProvisioner creates the compute phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface. Existing
// brokers are left untouched, so re-running apply after a partial
// failure only creates the missing servers.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.Network == nil {
		return fmt.Errorf("network not provisioned")
	}

	userData, err := RenderUserData(ctx.Config)
	if err != nil {
		return err
	}

	count := ctx.Config.Brokers.Count
	for ordinal := 0; ordinal < count; ordinal++ {
		if err := p.ensureBroker(ctx, ordinal, userData); err != nil {
			return err
		}
		ctx.Observer.Progress(phase, ordinal+1, count)
	}
	return nil
}

func (p *Provisioner) ensureBroker(ctx *provisioning.Context, ordinal int, userData string) error {
	name := naming.Broker(ctx.Config.ClusterName, ordinal)
	privateIP, err := config.BrokerAddress(ctx.Config.Network.SubnetCIDR, ordinal)
	if err != nil {
		return fmt.Errorf("deriving address for %s: %w", name, err)
	}

	existing, err := ctx.Infra.GetServerByName(ctx, name)
	if err != nil {
		return fmt.Errorf("looking up %s: %w", name, err)
	}
	if existing != nil {
		provisioning.LogResourceExists(ctx.Observer, phase, "server", name)
		ctx.State.BrokerIPs[name] = privateIP
		ctx.State.BrokerServerIDs[name] = existing.ID
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, "server", name)

	brokerLabels := labels.NewBuilder(ctx.Config.ClusterName).
		WithRole(labels.RoleBroker).
		WithOrdinal(ordinal).
		Build()

	id, err := ctx.Infra.CreateServer(ctx, platform.ServerCreateOpts{
		Name:       name,
		ServerType: ctx.Config.Brokers.ServerType,
		Image:      ctx.Config.Brokers.Image,
		Location:   ctx.Config.Location,
		SSHKeys:    ctx.Config.SSHKeys,
		Labels:     brokerLabels,
		UserData:   userData,
		NetworkID:  ctx.State.Network.ID,
		PrivateIP:  privateIP,
	})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}

	ctx.State.BrokerIPs[name] = privateIP
	ctx.State.BrokerServerIDs[name] = id
	provisioning.LogResourceCreated(ctx.Observer, phase, "server", name, fmt.Sprintf("%d", id))
	return nil
}
