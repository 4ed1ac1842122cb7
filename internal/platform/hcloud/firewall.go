package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureFirewall returns the named firewall, creating it when missing and
// replacing its rules when it exists. The firewall is applied to servers
// matching applyToSelector so newly created brokers pick it up without a
// separate attach call.
func (c *RealClient) EnsureFirewall(ctx context.Context, name string, rules []hcloud.FirewallRule, labels map[string]string, applyToSelector string) (*hcloud.Firewall, error) {
	existing, _, err := c.client.Firewall.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up firewall %s: %w", name, err)
	}

	if existing != nil {
		actions, _, err := c.client.Firewall.SetRules(ctx, existing, hcloud.FirewallSetRulesOpts{Rules: rules})
		if err != nil {
			return nil, fmt.Errorf("failed to update firewall %s rules: %w", name, err)
		}
		for _, action := range actions {
			if err := c.client.Action.WaitFor(ctx, action); err != nil {
				return nil, fmt.Errorf("failed waiting for firewall rule update: %w", err)
			}
		}
		return existing, nil
	}

	result, _, err := c.client.Firewall.Create(ctx, hcloud.FirewallCreateOpts{
		Name:   name,
		Rules:  rules,
		Labels: labels,
		ApplyTo: []hcloud.FirewallResource{{
			Type:          hcloud.FirewallResourceTypeLabelSelector,
			LabelSelector: &hcloud.FirewallResourceLabelSelector{Selector: applyToSelector},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create firewall %s: %w", name, err)
	}
	for _, action := range result.Actions {
		if err := c.client.Action.WaitFor(ctx, action); err != nil {
			return nil, fmt.Errorf("failed waiting for firewall creation: %w", err)
		}
	}
	return result.Firewall, nil
}

// GetFirewall returns the named firewall, or nil when it does not exist.
func (c *RealClient) GetFirewall(ctx context.Context, name string) (*hcloud.Firewall, error) {
	fw, _, err := c.client.Firewall.Get(ctx, name)
	return fw, err
}

// DeleteFirewall deletes the named firewall; absence is not an error.
func (c *RealClient) DeleteFirewall(ctx context.Context, name string) error {
	return c.deleteByName(ctx, "firewall", name,
		func(ctx context.Context, name string) (deletable, error) {
			fw, _, err := c.client.Firewall.Get(ctx, name)
			if fw == nil {
				return nil, err
			}
			return deleteFunc(func(ctx context.Context) error {
				_, err := c.client.Firewall.Delete(ctx, fw)
				return err
			}), err
		})
}
