package kafka

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCatalog(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSupported("3.6.0"))
	assert.True(t, IsSupported("3.3.1"))
	assert.False(t, IsSupported("2.8.0"))
	assert.False(t, IsSupported(""))
	assert.Equal(t, "3.6.0", DefaultVersion())
}

func TestDownloadURL(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"https://archive.apache.org/dist/kafka/3.6.0/kafka_2.13-3.6.0.tgz",
		DownloadURL("3.6.0"))
}

func TestGenerateClusterID(t *testing.T) {
	t.Parallel()
	id := GenerateClusterID()
	// 16 random bytes base64url-encoded without padding is always 22 chars.
	assert.Len(t, id, 22)
	assert.NotContains(t, id, "=")
	assert.NotEqual(t, id, GenerateClusterID())
}

func TestRenderServerProperties(t *testing.T) {
	t.Parallel()
	out, err := RenderServerProperties(ServerProperties{
		NodeID:            1,
		QuorumVoters:      "0@10.0.1.10:9093,1@10.0.1.11:9093,2@10.0.1.12:9093",
		AdvertisedAddress: "10.0.1.11",
		DataDir:           "/var/lib/kafka",
		Partitions:        6,
		ReplicationFactor: 3,
		MinInsyncReplicas: 2,
	})
	require.NoError(t, err)

	assert.Contains(t, out, "node.id=1")
	assert.Contains(t, out, "controller.quorum.voters=0@10.0.1.10:9093,1@10.0.1.11:9093,2@10.0.1.12:9093")
	assert.Contains(t, out, "advertised.listeners=PLAINTEXT://10.0.1.11:9092")
	assert.Contains(t, out, "listeners=PLAINTEXT://:9092,CONTROLLER://:9093")
	assert.Contains(t, out, "log.dirs=/var/lib/kafka")
	assert.Contains(t, out, "num.partitions=6")
	assert.Contains(t, out, "default.replication.factor=3")
	assert.Contains(t, out, "min.insync.replicas=2")
	assert.Contains(t, out, "transaction.state.log.min.isr=2")
}

func TestRenderServerProperties_RequiresVotersAndAddress(t *testing.T) {
	t.Parallel()
	_, err := RenderServerProperties(ServerProperties{AdvertisedAddress: "10.0.1.10"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quorum voters")

	_, err = RenderServerProperties(ServerProperties{QuorumVoters: "0@10.0.1.10:9093"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advertised address")
}

func TestRenderServiceUnit(t *testing.T) {
	t.Parallel()
	out, err := RenderServiceUnit(ServiceUnit{})
	require.NoError(t, err)

	assert.Contains(t, out, "User=kafka")
	assert.Contains(t, out, "ExecStart=/opt/kafka/bin/kafka-server-start.sh /etc/kafka/server.properties")
	assert.Contains(t, out, "Restart=on-failure")
	assert.Contains(t, out, "RestartSec=5")
	assert.True(t, strings.HasPrefix(out, "[Unit]"))
}

func TestRenderServiceUnit_Overrides(t *testing.T) {
	t.Parallel()
	out, err := RenderServiceUnit(ServiceUnit{
		User:       "kbroker",
		InstallDir: "/srv/kafka",
		ConfigPath: "/srv/kafka/server.properties",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "User=kbroker")
	assert.Contains(t, out, "ExecStart=/srv/kafka/bin/kafka-server-start.sh /srv/kafka/server.properties")
}
