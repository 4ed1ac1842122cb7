package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// EnsureSSHKey returns the named SSH key, uploading it when missing.
func (c *RealClient) EnsureSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (*hcloud.SSHKey, error) {
	existing, _, err := c.client.SSHKey.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up SSH key %s: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}

	key, _, err := c.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      name,
		PublicKey: publicKey,
		Labels:    labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload SSH key %s: %w", name, err)
	}
	return key, nil
}

// DeleteSSHKey deletes the named SSH key; absence is not an error.
func (c *RealClient) DeleteSSHKey(ctx context.Context, name string) error {
	return c.deleteByName(ctx, "ssh key", name,
		func(ctx context.Context, name string) (deletable, error) {
			key, _, err := c.client.SSHKey.Get(ctx, name)
			if key == nil {
				return nil, err
			}
			return deleteFunc(func(ctx context.Context) error {
				_, err := c.client.SSHKey.Delete(ctx, key)
				return err
			}), err
		})
}
