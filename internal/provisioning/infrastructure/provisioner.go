// Package infrastructure provisions the cluster's shared cloud
// resources: private network, subnet, firewall, and SSH key.
package infrastructure

import (
	"github.com/kraftner/kraftner/internal/provisioning"
)

const phase = "infrastructure"

// Provisioner creates the infrastructure every broker depends on. It
// runs before compute so servers can attach to the network at their
// reserved addresses.
type Provisioner struct{}

// NewProvisioner creates the infrastructure phase.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if err := p.ProvisionNetwork(ctx); err != nil {
		return err
	}
	if err := p.ProvisionFirewall(ctx); err != nil {
		return err
	}
	if err := p.ProvisionSSHKey(ctx); err != nil {
		return err
	}
	return nil
}
