package hcloud

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// CleanupBySelector deletes every cluster resource matching the label
// selector, servers first so networks and firewalls are free to go.
// Individual failures are collected; the rest of the cleanup continues.
func (c *RealClient) CleanupBySelector(ctx context.Context, selector string) error {
	var errs []error

	servers, err := c.GetServersBySelector(ctx, selector)
	if err != nil {
		errs = append(errs, err)
	}
	for _, server := range servers {
		log.Printf("[Cleanup] Deleting server %s (id %d)...", server.Name, server.ID)
		if err := c.DeleteServer(ctx, server.Name); err != nil {
			errs = append(errs, fmt.Errorf("server %s: %w", server.Name, err))
		}
	}

	firewalls, err := c.client.Firewall.AllWithOpts(ctx, hcloud.FirewallListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: selector},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list firewalls: %w", err))
	}
	for _, fw := range firewalls {
		log.Printf("[Cleanup] Deleting firewall %s...", fw.Name)
		if err := c.DeleteFirewall(ctx, fw.Name); err != nil {
			errs = append(errs, fmt.Errorf("firewall %s: %w", fw.Name, err))
		}
	}

	networks, err := c.client.Network.AllWithOpts(ctx, hcloud.NetworkListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: selector},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list networks: %w", err))
	}
	for _, network := range networks {
		log.Printf("[Cleanup] Deleting network %s...", network.Name)
		if err := c.DeleteNetwork(ctx, network.Name); err != nil {
			errs = append(errs, fmt.Errorf("network %s: %w", network.Name, err))
		}
	}

	keys, err := c.client.SSHKey.AllWithOpts(ctx, hcloud.SSHKeyListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: selector},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list SSH keys: %w", err))
	}
	for _, key := range keys {
		log.Printf("[Cleanup] Deleting SSH key %s...", key.Name)
		if err := c.DeleteSSHKey(ctx, key.Name); err != nil {
			errs = append(errs, fmt.Errorf("ssh key %s: %w", key.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup finished with %d errors: %w", len(errs), errors.Join(errs...))
	}
	return nil
}
