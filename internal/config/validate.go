package config

import (
	"fmt"
	"net"
	"regexp"
	"sort"

	"github.com/kraftner/kraftner/internal/kafka"
)

// ValidLocations contains the Hetzner Cloud datacenter locations.
var ValidLocations = map[string]bool{
	"nbg1": true, // Nuremberg, Germany
	"fsn1": true, // Falkenstein, Germany
	"hel1": true, // Helsinki, Finland
	"ash":  true, // Ashburn, USA
	"hil":  true, // Hillsboro, USA
	"sin":  true, // Singapore
}

// ValidNetworkZones contains the Hetzner Cloud network zones.
var ValidNetworkZones = map[string]bool{
	"eu-central":   true,
	"us-east":      true,
	"us-west":      true,
	"ap-southeast": true,
}

// clusterNamePattern keeps names usable as Hetzner resource names and as
// hostname prefixes the bootstrap coordinator parses ordinals out of.
var clusterNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,30}[a-z0-9]$`)

// Validate checks the configuration and returns the first violation found.
// It must reject a bad replication-factor/broker-count relationship before
// any cloud resource is created.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}
	if !clusterNamePattern.MatchString(c.ClusterName) {
		return fmt.Errorf("cluster_name %q is invalid: lowercase alphanumerics and dashes, starting with a letter", c.ClusterName)
	}
	if c.HCloudToken == "" {
		return fmt.Errorf("hcloud_token is required (set it in the profile or via HCLOUD_TOKEN)")
	}
	if !ValidLocations[c.Location] {
		return fmt.Errorf("invalid location %q: must be one of %v", c.Location, sortedKeys(ValidLocations))
	}
	if err := c.validateNetwork(); err != nil {
		return fmt.Errorf("network validation failed: %w", err)
	}
	if err := c.validateBrokers(); err != nil {
		return fmt.Errorf("broker validation failed: %w", err)
	}
	if err := c.validateKafka(); err != nil {
		return fmt.Errorf("kafka validation failed: %w", err)
	}
	return nil
}

func (c *Config) validateNetwork() error {
	if c.Network.Zone != "" && !ValidNetworkZones[c.Network.Zone] {
		return fmt.Errorf("invalid network zone %q: must be one of %v", c.Network.Zone, sortedKeys(ValidNetworkZones))
	}

	_, netRange, err := net.ParseCIDR(c.Network.IPv4CIDR)
	if err != nil {
		return fmt.Errorf("invalid ipv4_cidr %q: %w", c.Network.IPv4CIDR, err)
	}
	subnetIP, subnet, err := net.ParseCIDR(c.Network.SubnetCIDR)
	if err != nil {
		return fmt.Errorf("invalid subnet_cidr %q: %w", c.Network.SubnetCIDR, err)
	}
	if !netRange.Contains(subnetIP) {
		return fmt.Errorf("subnet %s is not contained in network %s", c.Network.SubnetCIDR, c.Network.IPv4CIDR)
	}

	// The subnet must fit all broker addresses at the fixed offset.
	ones, bits := subnet.Mask.Size()
	hosts := 1 << (bits - ones)
	if c.Brokers.Count > 0 && BrokerAddressOffset+c.Brokers.Count >= hosts-1 {
		return fmt.Errorf("subnet %s is too small for %d brokers", c.Network.SubnetCIDR, c.Brokers.Count)
	}
	return nil
}

func (c *Config) validateBrokers() error {
	if c.Brokers.Count < 1 {
		return fmt.Errorf("broker count must be at least 1, got %d", c.Brokers.Count)
	}
	if c.Brokers.ServerType == "" {
		return fmt.Errorf("server_type is required")
	}
	return nil
}

func (c *Config) validateKafka() error {
	if !kafka.IsSupported(c.Kafka.Version) {
		return fmt.Errorf("unsupported kafka version %q: must be one of %v", c.Kafka.Version, kafka.SupportedVersions)
	}
	if c.Kafka.Partitions < 1 {
		return fmt.Errorf("partitions must be at least 1, got %d", c.Kafka.Partitions)
	}
	if c.Kafka.ReplicationFactor < 1 {
		return fmt.Errorf("replication_factor must be at least 1, got %d", c.Kafka.ReplicationFactor)
	}
	if c.Kafka.ReplicationFactor > c.Brokers.Count {
		return fmt.Errorf("replication_factor %d exceeds broker count %d", c.Kafka.ReplicationFactor, c.Brokers.Count)
	}
	if c.Kafka.MinInsyncReplicas < 1 {
		return fmt.Errorf("min_insync_replicas must be at least 1, got %d", c.Kafka.MinInsyncReplicas)
	}
	if c.Kafka.MinInsyncReplicas > c.Kafka.ReplicationFactor {
		return fmt.Errorf("min_insync_replicas %d exceeds replication_factor %d", c.Kafka.MinInsyncReplicas, c.Kafka.ReplicationFactor)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
