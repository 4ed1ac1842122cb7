package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kraftner/kraftner/internal/config"
	"github.com/kraftner/kraftner/internal/provisioning"
	"github.com/kraftner/kraftner/internal/util/keygen"
	"github.com/kraftner/kraftner/internal/util/labels"
	"github.com/kraftner/kraftner/internal/util/naming"
)

// ProvisionSSHKey ensures an admin SSH key exists for the cluster. When
// the config names existing keys those are used as-is; otherwise a key
// pair is generated, the public half uploaded, and the private half
// written next to the profiles so the operator can reach the brokers.
func (p *Provisioner) ProvisionSSHKey(ctx *provisioning.Context) error {
	if len(ctx.Config.SSHKeys) > 0 {
		provisioning.LogResourceExists(ctx.Observer, phase, "ssh key", ctx.Config.SSHKeys[0])
		return nil
	}

	name := naming.SSHKey(ctx.Config.ClusterName)
	provisioning.LogResourceCreating(ctx.Observer, phase, "ssh key", name)

	pair, err := keygen.GenerateRSAKeyPair(4096)
	if err != nil {
		return fmt.Errorf("generating SSH key pair: %w", err)
	}

	keyLabels := labels.NewBuilder(ctx.Config.ClusterName).Build()
	key, err := ctx.Infra.EnsureSSHKey(ctx, name, string(pair.PublicKey), keyLabels)
	if err != nil {
		return fmt.Errorf("failed to ensure SSH key: %w", err)
	}
	ctx.State.SSHKeyID = key.ID
	ctx.Config.SSHKeys = []string{name}

	path, err := privateKeyPath(ctx.Config.ClusterName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pair.PrivateKey, 0o600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	provisioning.LogResourceCreated(ctx.Observer, phase, "ssh key", name, fmt.Sprintf("%d", key.ID))
	ctx.Observer.Printf("[%s] private key written to %s", phase, path)
	return nil
}

func privateKeyPath(clusterName string) (string, error) {
	path, err := config.PrivateKeyPath(clusterName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("creating key dir: %w", err)
	}
	return path, nil
}
