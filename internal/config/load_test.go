package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cluster_name: events
hcloud_token: token
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "nbg1", cfg.Location)
	assert.Equal(t, "10.0.0.0/16", cfg.Network.IPv4CIDR)
	assert.Equal(t, "10.0.1.0/24", cfg.Network.SubnetCIDR)
	assert.Equal(t, 3, cfg.Brokers.Count)
	assert.Equal(t, "cx32", cfg.Brokers.ServerType)
	assert.Equal(t, "3.6.0", cfg.Kafka.Version)
	assert.Equal(t, 3, cfg.Kafka.Partitions)
	assert.Equal(t, 3, cfg.Kafka.ReplicationFactor)
	assert.Equal(t, 2, cfg.Kafka.MinInsyncReplicas)
}

func TestLoadFile_SingleBrokerDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cluster_name: dev
hcloud_token: token
brokers:
  count: 1
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Kafka.ReplicationFactor)
	assert.Equal(t, 1, cfg.Kafka.MinInsyncReplicas)
}

func TestLoadFile_TokenFromEnvironment(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "env-token")
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster_name: events\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.HCloudToken)
}

func TestLoadFile_RejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cluster_name: events
hcloud_token: token
brokers:
  count: 2
kafka:
  replication_factor: 3
`), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replication_factor 3 exceeds broker count 2")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
