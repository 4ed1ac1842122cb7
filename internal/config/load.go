package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kraftner/kraftner/internal/kafka"
)

// Defaults applied by LoadFile and the wizard.
const (
	DefaultLocation    = "nbg1"
	DefaultNetworkCIDR = "10.0.0.0/16"
	DefaultSubnetCIDR  = "10.0.1.0/24"
	DefaultNetworkZone = "eu-central"
	DefaultServerType  = "cx32"
	DefaultImage       = "debian-12"
	DefaultBrokerCount = 3
	DefaultPartitions  = 3
)

// LoadFile reads a cluster configuration from a YAML file, applies
// defaults, resolves the API token from the environment when absent, and
// validates the result. Validation failures here are what stops an invalid
// replication factor before any instance is created.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.HCloudToken == "" {
		cfg.HCloudToken = os.Getenv("HCLOUD_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Network.IPv4CIDR == "" {
		cfg.Network.IPv4CIDR = DefaultNetworkCIDR
	}
	if cfg.Network.SubnetCIDR == "" {
		cfg.Network.SubnetCIDR = DefaultSubnetCIDR
	}
	if cfg.Network.Zone == "" {
		cfg.Network.Zone = DefaultNetworkZone
	}
	if cfg.Brokers.Count == 0 {
		cfg.Brokers.Count = DefaultBrokerCount
	}
	if cfg.Brokers.ServerType == "" {
		cfg.Brokers.ServerType = DefaultServerType
	}
	if cfg.Brokers.Image == "" {
		cfg.Brokers.Image = DefaultImage
	}
	if cfg.Kafka.Version == "" {
		cfg.Kafka.Version = kafka.DefaultVersion()
	}
	if cfg.Kafka.Partitions == 0 {
		cfg.Kafka.Partitions = DefaultPartitions
	}
	if cfg.Kafka.ReplicationFactor == 0 {
		cfg.Kafka.ReplicationFactor = cfg.Brokers.Count
		if cfg.Kafka.ReplicationFactor > 3 {
			cfg.Kafka.ReplicationFactor = 3
		}
	}
	if cfg.Kafka.MinInsyncReplicas == 0 {
		cfg.Kafka.MinInsyncReplicas = cfg.Kafka.ReplicationFactor - 1
		if cfg.Kafka.MinInsyncReplicas < 1 {
			cfg.Kafka.MinInsyncReplicas = 1
		}
	}
}
