// Package provisioning provides the shared phase machinery for cluster
// provisioning.
//
// The domain is organized into focused subpackages:
//   - infrastructure/ — network, subnet, firewall, SSH key
//   - compute/ — broker servers and their boot configuration
//
// This root package holds the Phase interface, the shared Context and
// State, and pre-flight validation.
package provisioning

import (
	"context"

	"github.com/kraftner/kraftner/internal/config"
	hcloudinternal "github.com/kraftner/kraftner/internal/platform/hcloud"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// State holds the shared results of provisioning phases. It is
// progressively populated as each phase completes and read by the
// phases that follow.
type State struct {
	// Infrastructure results.
	Network  *hcloud.Network
	Firewall *hcloud.Firewall
	SSHKeyID int64

	// Compute results.
	BrokerIPs       map[string]string // serverName -> private IP
	BrokerServerIDs map[string]int64  // serverName -> server ID
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		BrokerIPs:       make(map[string]string),
		BrokerServerIDs: make(map[string]int64),
	}
}

// Context wraps the dependencies and state a provisioning phase needs.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Infra    hcloudinternal.InfrastructureManager
	Observer Observer
}

// NewContext creates a provisioning context with a console observer.
func NewContext(ctx context.Context, cfg *config.Config, infra hcloudinternal.InfrastructureManager) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Infra:    infra,
		Observer: NewConsoleObserver(),
	}
}
