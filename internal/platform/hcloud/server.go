package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/kraftner/kraftner/internal/util/retry"
)

// CreateServer creates a broker server, attaches it to the cluster
// network at its reserved private address, and powers it on. The server
// is created stopped so the attach completes before the first boot —
// the bootstrap coordinator depends on the address being in place when
// user data runs.
func (c *RealClient) CreateServer(ctx context.Context, opts ServerCreateOpts) (int64, error) {
	if (opts.NetworkID == 0) != (opts.PrivateIP == "") {
		return 0, fmt.Errorf("NetworkID and PrivateIP must be set together")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	createOpts, err := c.buildServerCreateOpts(ctx, opts)
	if err != nil {
		return 0, err
	}

	var result hcloud.ServerCreateResult
	err = retry.Do(ctx, func() error {
		res, _, err := c.client.Server.Create(ctx, createOpts)
		if err != nil {
			if isInvalidParameter(err) {
				return retry.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}, retry.Attempts(c.timeouts.RetryAttempts), retry.InitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return 0, fmt.Errorf("failed to create server %s: %w", opts.Name, err)
	}
	if err := c.client.Action.WaitFor(ctx, result.Action); err != nil {
		return 0, fmt.Errorf("failed waiting for server %s creation: %w", opts.Name, err)
	}

	if opts.NetworkID != 0 {
		if err := c.attachToNetwork(ctx, result.Server, opts.NetworkID, opts.PrivateIP); err != nil {
			return 0, err
		}
		if err := c.powerOn(ctx, result.Server); err != nil {
			return 0, err
		}
	}

	return result.Server.ID, nil
}

func (c *RealClient) buildServerCreateOpts(ctx context.Context, opts ServerCreateOpts) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.client.ServerType.Get(ctx, opts.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to resolve server type %s: %w", opts.ServerType, err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("server type %s not found", opts.ServerType)
	}

	image, _, err := c.client.Image.GetForArchitecture(ctx, opts.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to resolve image %s: %w", opts.Image, err)
	}
	if image == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("image %s not found for architecture %s", opts.Image, serverType.Architecture)
	}

	location, _, err := c.client.Location.Get(ctx, opts.Location)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to resolve location %s: %w", opts.Location, err)
	}

	var keys []*hcloud.SSHKey
	for _, name := range opts.SSHKeys {
		key, _, err := c.client.SSHKey.Get(ctx, name)
		if err != nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to resolve SSH key %s: %w", name, err)
		}
		if key == nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("SSH key %s not found", name)
		}
		keys = append(keys, key)
	}

	// Created stopped when a network attach follows.
	var startAfterCreate *bool
	if opts.NetworkID != 0 {
		startAfterCreate = hcloud.Ptr(false)
	}

	return hcloud.ServerCreateOpts{
		Name:             opts.Name,
		ServerType:       serverType,
		Image:            image,
		Location:         location,
		SSHKeys:          keys,
		Labels:           opts.Labels,
		UserData:         opts.UserData,
		StartAfterCreate: startAfterCreate,
	}, nil
}

func (c *RealClient) attachToNetwork(ctx context.Context, server *hcloud.Server, networkID int64, privateIP string) error {
	ip := net.ParseIP(privateIP)
	if ip == nil {
		return fmt.Errorf("invalid private IP %q", privateIP)
	}

	return retry.Do(ctx, func() error {
		action, _, err := c.client.Server.AttachToNetwork(ctx, server, hcloud.ServerAttachToNetworkOpts{
			Network: &hcloud.Network{ID: networkID},
			IP:      ip,
		})
		if err != nil {
			if isResourceLocked(err) {
				return err
			}
			return retry.Permanent(fmt.Errorf("failed to attach server %s to network: %w", server.Name, err))
		}
		return c.client.Action.WaitFor(ctx, action)
	}, retry.Attempts(c.timeouts.RetryAttempts), retry.InitialDelay(c.timeouts.RetryInitialDelay))
}

func (c *RealClient) powerOn(ctx context.Context, server *hcloud.Server) error {
	action, _, err := c.client.Server.Poweron(ctx, server)
	if err != nil {
		return fmt.Errorf("failed to power on server %s: %w", server.Name, err)
	}
	return c.client.Action.WaitFor(ctx, action)
}

// GetServerByName returns the named server, or nil when it does not exist.
func (c *RealClient) GetServerByName(ctx context.Context, name string) (*hcloud.Server, error) {
	server, _, err := c.client.Server.Get(ctx, name)
	return server, err
}

// GetServersBySelector returns all servers matching a label selector.
func (c *RealClient) GetServersBySelector(ctx context.Context, selector string) ([]*hcloud.Server, error) {
	servers, err := c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: selector},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers by selector %q: %w", selector, err)
	}
	return servers, nil
}

// DeleteServer deletes the named server; absence is not an error.
func (c *RealClient) DeleteServer(ctx context.Context, name string) error {
	return c.deleteByName(ctx, "server", name,
		func(ctx context.Context, name string) (deletable, error) {
			server, _, err := c.client.Server.Get(ctx, name)
			if server == nil {
				return nil, err
			}
			return deleteFunc(func(ctx context.Context) error {
				_, _, err := c.client.Server.DeleteWithResult(ctx, server)
				return err
			}), err
		})
}
