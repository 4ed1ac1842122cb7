package hcloud

import (
	"context"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// MockClient is a function-field implementation of
// InfrastructureManager for tests. Unset functions return zero values.
type MockClient struct {
	EnsureNetworkFunc  func(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error)
	EnsureSubnetFunc   func(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error
	GetNetworkFunc     func(ctx context.Context, name string) (*hcloud.Network, error)
	DeleteNetworkFunc  func(ctx context.Context, name string) error
	EnsureFirewallFunc func(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToSelector string) (*hcloud.Firewall, error)
	GetFirewallFunc    func(ctx context.Context, name string) (*hcloud.Firewall, error)
	DeleteFirewallFunc func(ctx context.Context, name string) error
	CreateServerFunc   func(ctx context.Context, opts ServerCreateOpts) (int64, error)
	GetServerFunc      func(ctx context.Context, name string) (*hcloud.Server, error)
	GetServersFunc     func(ctx context.Context, selector string) ([]*hcloud.Server, error)
	DeleteServerFunc   func(ctx context.Context, name string) error
	EnsureSSHKeyFunc   func(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error)
	DeleteSSHKeyFunc   func(ctx context.Context, name string) error
	CleanupFunc        func(ctx context.Context, selector string) error
}

var _ InfrastructureManager = (*MockClient)(nil)

func (m *MockClient) EnsureNetwork(ctx context.Context, name, ipRange string, labels map[string]string) (*hcloud.Network, error) {
	if m.EnsureNetworkFunc == nil {
		return nil, nil
	}
	return m.EnsureNetworkFunc(ctx, name, ipRange, labels)
}

func (m *MockClient) EnsureSubnet(ctx context.Context, network *hcloud.Network, ipRange, networkZone string) error {
	if m.EnsureSubnetFunc == nil {
		return nil
	}
	return m.EnsureSubnetFunc(ctx, network, ipRange, networkZone)
}

func (m *MockClient) GetNetwork(ctx context.Context, name string) (*hcloud.Network, error) {
	if m.GetNetworkFunc == nil {
		return nil, nil
	}
	return m.GetNetworkFunc(ctx, name)
}

func (m *MockClient) DeleteNetwork(ctx context.Context, name string) error {
	if m.DeleteNetworkFunc == nil {
		return nil
	}
	return m.DeleteNetworkFunc(ctx, name)
}

func (m *MockClient) EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToSelector string) (*hcloud.Firewall, error) {
	if m.EnsureFirewallFunc == nil {
		return nil, nil
	}
	return m.EnsureFirewallFunc(ctx, name, rules, labels, applyToSelector)
}

func (m *MockClient) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	if m.GetFirewallFunc == nil {
		return nil, nil
	}
	return m.GetFirewallFunc(ctx, name)
}

func (m *MockClient) DeleteFirewall(ctx context.Context, name string) error {
	if m.DeleteFirewallFunc == nil {
		return nil
	}
	return m.DeleteFirewallFunc(ctx, name)
}

func (m *MockClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (int64, error) {
	if m.CreateServerFunc == nil {
		return 0, nil
	}
	return m.CreateServerFunc(ctx, opts)
}

func (m *MockClient) GetServerByName(ctx context.Context, name string) (*hcloud.Server, error) {
	if m.GetServerFunc == nil {
		return nil, nil
	}
	return m.GetServerFunc(ctx, name)
}

func (m *MockClient) GetServersBySelector(ctx context.Context, selector string) ([]*hcloud.Server, error) {
	if m.GetServersFunc == nil {
		return nil, nil
	}
	return m.GetServersFunc(ctx, selector)
}

func (m *MockClient) DeleteServer(ctx context.Context, name string) error {
	if m.DeleteServerFunc == nil {
		return nil
	}
	return m.DeleteServerFunc(ctx, name)
}

func (m *MockClient) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	if m.EnsureSSHKeyFunc == nil {
		return &hcloud.SSHKey{ID: 1, Name: name}, nil
	}
	return m.EnsureSSHKeyFunc(ctx, name, publicKey, labels)
}

func (m *MockClient) DeleteSSHKey(ctx context.Context, name string) error {
	if m.DeleteSSHKeyFunc == nil {
		return nil
	}
	return m.DeleteSSHKeyFunc(ctx, name)
}

func (m *MockClient) CleanupBySelector(ctx context.Context, selector string) error {
	if m.CleanupFunc == nil {
		return nil
	}
	return m.CleanupFunc(ctx, selector)
}
