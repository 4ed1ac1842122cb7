// Package labels provides uniform labeling for cluster cloud resources.
//
// Every resource the provisioner creates carries the cluster label, which
// is what destroy uses for cleanup and what the bootstrap coordinator's
// peer directory uses to enumerate sibling brokers.
package labels

import "fmt"

// Label keys, namespaced under the kraftner.io prefix.
const (
	KeyCluster   = "kraftner.io/cluster"
	KeyRole      = "kraftner.io/role"
	KeyOrdinal   = "kraftner.io/ordinal"
	KeyManagedBy = "kraftner.io/managed-by"
)

// Role values.
const (
	RoleBroker = "broker"
)

// ManagedBy value stamped on every resource.
const ManagedByKraftner = "kraftner"

// Builder accumulates labels for a resource.
type Builder struct {
	labels map[string]string
}

// NewBuilder creates a Builder with the cluster and managed-by labels set.
func NewBuilder(clusterName string) *Builder {
	return &Builder{
		labels: map[string]string{
			KeyCluster:   clusterName,
			KeyManagedBy: ManagedByKraftner,
		},
	}
}

// WithRole adds the role label.
func (b *Builder) WithRole(role string) *Builder {
	b.labels[KeyRole] = role
	return b
}

// WithOrdinal adds the broker ordinal label.
func (b *Builder) WithOrdinal(ordinal int) *Builder {
	b.labels[KeyOrdinal] = fmt.Sprintf("%d", ordinal)
	return b
}

// Build returns the accumulated label map.
func (b *Builder) Build() map[string]string {
	out := make(map[string]string, len(b.labels))
	for k, v := range b.labels {
		out[k] = v
	}
	return out
}

// ClusterSelector returns the label selector matching every resource of a cluster.
func ClusterSelector(clusterName string) string {
	return fmt.Sprintf("%s=%s", KeyCluster, clusterName)
}

// BrokerSelector returns the label selector matching the broker servers of a cluster.
func BrokerSelector(clusterName string) string {
	return fmt.Sprintf("%s=%s,%s=%s", KeyCluster, clusterName, KeyRole, RoleBroker)
}
