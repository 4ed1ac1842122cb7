// Package bootstrap implements the on-VM cluster bootstrap coordinator.
//
// Each broker VM runs the coordinator exactly once at first boot (via
// cloud-init user data). It derives the broker's node ID from its
// hostname, resolves the reserved addresses of all peers, renders the
// local server configuration, enables the service supervisor entry, and
// — on the first node only — performs one-time storage formatting.
//
// There is no coordinator process and no message passing between
// brokers: every broker independently derives the same quorum voter set
// from the same static inputs. The only synchronization point is the
// peer-address rendezvous, which replaces the fixed sleep the procedure
// would otherwise need with bounded retries against the cloud directory.
package bootstrap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the provisioner's user data writes the
// bootstrap configuration before first boot.
const DefaultConfigPath = "/etc/kraftner/bootstrap.yaml"

// Config is the immutable per-run configuration of the coordinator.
// It is written by the provisioner, read once at process start, and
// threaded explicitly through every step — no ad hoc re-fetching.
type Config struct {
	ClusterName string `yaml:"cluster_name"`
	BrokerCount int    `yaml:"broker_count"`
	SubnetCIDR  string `yaml:"subnet_cidr"`

	KafkaVersion      string `yaml:"kafka_version"`
	Partitions        int    `yaml:"partitions"`
	ReplicationFactor int    `yaml:"replication_factor"`
	MinInsyncReplicas int    `yaml:"min_insync_replicas"`

	// HCloudToken authorizes peer-directory lookups against the cloud
	// API. When empty, peer addresses are derived from the subnet plan
	// alone.
	HCloudToken string `yaml:"hcloud_token,omitempty"`
}

// LoadConfig reads and validates the bootstrap configuration file.
// Any problem here is a configuration error: fatal, never retried.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bootstrap config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bootstrap config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the coordinator cannot proceed without.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if c.BrokerCount < 1 {
		return fmt.Errorf("broker_count must be at least 1, got %d", c.BrokerCount)
	}
	if c.SubnetCIDR == "" {
		return fmt.Errorf("subnet_cidr is required")
	}
	if c.KafkaVersion == "" {
		return fmt.Errorf("kafka_version is required")
	}
	if c.ReplicationFactor > c.BrokerCount {
		return fmt.Errorf("replication_factor %d exceeds broker_count %d", c.ReplicationFactor, c.BrokerCount)
	}
	if c.MinInsyncReplicas > c.ReplicationFactor {
		return fmt.Errorf("min_insync_replicas %d exceeds replication_factor %d", c.MinInsyncReplicas, c.ReplicationFactor)
	}
	return nil
}
