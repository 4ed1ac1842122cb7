package kafka

import (
	"bytes"
	"fmt"
	"text/template"
)

// ServerProperties holds everything that varies per broker in the rendered
// server configuration. The quorum voter string must be byte-identical
// across all brokers of a cluster; only NodeID and AdvertisedAddress differ.
type ServerProperties struct {
	NodeID            int
	QuorumVoters      string
	AdvertisedAddress string
	DataDir           string
	Partitions        int
	ReplicationFactor int
	MinInsyncReplicas int
}

// serverPropertiesTemplate is the fixed template for a combined
// broker+controller KRaft node. Replication-related topic internals follow
// the cluster-wide replication factor so a broker loss never strands the
// offsets or transaction logs.
const serverPropertiesTemplate = `# Managed by kraftner. Manual edits are overwritten on re-bootstrap.
process.roles=broker,controller
node.id={{ .NodeID }}
controller.quorum.voters={{ .QuorumVoters }}

listeners=PLAINTEXT://:{{ .ClientPort }},CONTROLLER://:{{ .ControllerPort }}
inter.broker.listener.name=PLAINTEXT
advertised.listeners=PLAINTEXT://{{ .AdvertisedAddress }}:{{ .ClientPort }}
controller.listener.names=CONTROLLER
listener.security.protocol.map=CONTROLLER:PLAINTEXT,PLAINTEXT:PLAINTEXT

log.dirs={{ .DataDir }}
num.partitions={{ .Partitions }}
default.replication.factor={{ .ReplicationFactor }}
min.insync.replicas={{ .MinInsyncReplicas }}
offsets.topic.replication.factor={{ .ReplicationFactor }}
transaction.state.log.replication.factor={{ .ReplicationFactor }}
transaction.state.log.min.isr={{ .MinInsyncReplicas }}
`

var propertiesTmpl = template.Must(template.New("server.properties").Parse(serverPropertiesTemplate))

// RenderServerProperties renders the server.properties content for one broker.
func RenderServerProperties(p ServerProperties) (string, error) {
	if p.QuorumVoters == "" {
		return "", fmt.Errorf("quorum voters must not be empty")
	}
	if p.AdvertisedAddress == "" {
		return "", fmt.Errorf("advertised address must not be empty")
	}

	data := struct {
		ServerProperties
		ClientPort     int
		ControllerPort int
	}{p, ClientPort, ControllerPort}

	var buf bytes.Buffer
	if err := propertiesTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render server.properties: %w", err)
	}
	return buf.String(), nil
}
