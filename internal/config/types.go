// Package config defines the cluster configuration, its validation rules,
// and the on-disk profile store under ~/.kraftner.
package config

// Config describes one Kafka cluster. It is set once at provisioning time
// and treated as immutable afterwards; changing topology requires
// re-provisioning.
type Config struct {
	ClusterName string `yaml:"cluster_name"`
	HCloudToken string `yaml:"hcloud_token,omitempty"`
	Location    string `yaml:"location"` // e.g. nbg1, fsn1, hel1

	// SSHKeys lists existing Hetzner SSH key names for admin access.
	// When empty, apply generates a cluster key and uploads it.
	SSHKeys []string `yaml:"ssh_keys,omitempty"`

	Network NetworkConfig `yaml:"network"`
	Brokers BrokerConfig  `yaml:"brokers"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Addons  AddonsConfig  `yaml:"addons,omitempty"`
}

// NetworkConfig holds the private network layout. Broker private addresses
// are carved deterministically out of the subnet, which is what makes the
// quorum voter set derivable on every VM without coordination.
type NetworkConfig struct {
	IPv4CIDR   string `yaml:"ipv4_cidr"`
	SubnetCIDR string `yaml:"subnet_cidr"`
	Zone       string `yaml:"zone"` // e.g. eu-central
}

// BrokerConfig holds the broker fleet shape.
type BrokerConfig struct {
	Count      int    `yaml:"count"`
	ServerType string `yaml:"server_type"` // e.g. cx32
	Image      string `yaml:"image"`       // base OS image
}

// KafkaConfig holds the distribution version and cluster-wide topic defaults.
type KafkaConfig struct {
	Version           string `yaml:"version"`
	Partitions        int    `yaml:"partitions"`
	ReplicationFactor int    `yaml:"replication_factor"`
	MinInsyncReplicas int    `yaml:"min_insync_replicas"`
}

// AddonsConfig holds optional components deployed to an existing
// Kubernetes cluster via Helm.
type AddonsConfig struct {
	// KubeconfigPath points at the cluster the addons are deployed to.
	KubeconfigPath string `yaml:"kubeconfig_path,omitempty"`

	KafkaUI             AddonToggle `yaml:"kafka_ui,omitempty"`
	KafkaExporter       AddonToggle `yaml:"kafka_exporter,omitempty"`
	SchemaRegistry      AddonToggle `yaml:"schema_registry,omitempty"`
	KubePrometheusStack AddonToggle `yaml:"kube_prometheus_stack,omitempty"`
}

// AddonToggle enables a single addon.
type AddonToggle struct {
	Enabled bool `yaml:"enabled"`
}

// AnyEnabled reports whether at least one addon is switched on.
func (a AddonsConfig) AnyEnabled() bool {
	return a.KafkaUI.Enabled || a.KafkaExporter.Enabled || a.SchemaRegistry.Enabled || a.KubePrometheusStack.Enabled
}
