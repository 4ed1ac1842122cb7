package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	t.Parallel()
	got := NewBuilder("events").WithRole(RoleBroker).WithOrdinal(2).Build()

	assert.Equal(t, map[string]string{
		KeyCluster:   "events",
		KeyManagedBy: "kraftner",
		KeyRole:      "broker",
		KeyOrdinal:   "2",
	}, got)
}

func TestBuildReturnsCopy(t *testing.T) {
	t.Parallel()
	b := NewBuilder("events")
	first := b.Build()
	first["mutated"] = "yes"
	assert.NotContains(t, b.Build(), "mutated")
}

func TestSelectors(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "kraftner.io/cluster=events", ClusterSelector("events"))
	assert.Equal(t, "kraftner.io/cluster=events,kraftner.io/role=broker", BrokerSelector("events"))
}
