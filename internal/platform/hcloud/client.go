// Package hcloud wraps the Hetzner Cloud API behind small interfaces so
// provisioning code and tests never touch the SDK client directly.
package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// ServerCreateOpts holds all parameters for creating a broker server.
type ServerCreateOpts struct {
	Name       string
	ServerType string
	Image      string
	Location   string
	SSHKeys    []string
	Labels     map[string]string
	UserData   string
	// NetworkID and PrivateIP pin the server to its reserved address in
	// the cluster subnet. Both must be set together.
	NetworkID int64
	PrivateIP string
}

// NetworkManager manages private networks and subnets.
type NetworkManager interface {
	EnsureNetwork(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error)
	EnsureSubnet(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error
	GetNetwork(ctx context.Context, name string) (*hcloud.Network, error)
	DeleteNetwork(ctx context.Context, name string) error
}

// FirewallManager manages firewalls.
type FirewallManager interface {
	EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToSelector string) (*hcloud.Firewall, error)
	GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error)
	DeleteFirewall(ctx context.Context, name string) error
}

// ServerManager manages broker servers.
type ServerManager interface {
	// CreateServer creates the server, attaches it to the network at its
	// reserved private address, and powers it on. Returns the server ID.
	CreateServer(ctx context.Context, opts ServerCreateOpts) (int64, error)
	GetServerByName(ctx context.Context, name string) (*hcloud.Server, error)
	GetServersBySelector(ctx context.Context, selector string) ([]*hcloud.Server, error)
	DeleteServer(ctx context.Context, name string) error
}

// SSHKeyManager manages uploaded SSH public keys.
type SSHKeyManager interface {
	EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)
	DeleteSSHKey(ctx context.Context, name string) error
}

// Cleaner deletes every resource matching a label selector.
type Cleaner interface {
	CleanupBySelector(ctx context.Context, selector string) error
}

// InfrastructureManager is the full surface the provisioner needs.
type InfrastructureManager interface {
	NetworkManager
	FirewallManager
	ServerManager
	SSHKeyManager
	Cleaner
}
