package compute

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/kraftner/kraftner/internal/bootstrap"
	"github.com/kraftner/kraftner/internal/config"
)

// binaryURL is where first boot fetches the bootstrap binary from.
const binaryURL = "https://github.com/kraftner/kraftner/releases/latest/download/kraftner_linux_amd64"

const userDataTemplate = `#cloud-config
write_files:
  - path: {{ .ConfigPath }}
    permissions: "0600"
    owner: root:root
    content: |
{{ .BootstrapConfig }}
runcmd:
  - curl -fsSL -o /usr/local/bin/kraftner {{ .BinaryURL }}
  - chmod 0755 /usr/local/bin/kraftner
  - /usr/local/bin/kraftner bootstrap
`

var userDataTmpl = template.Must(template.New("user-data").Parse(userDataTemplate))

// RenderUserData produces the cloud-init payload for a broker VM: it
// writes the bootstrap configuration before first boot and runs the
// bootstrap coordinator exactly once. The payload is identical for
// every broker — each VM derives its own role from its hostname.
func RenderUserData(cfg *config.Config) (string, error) {
	bc := bootstrap.Config{
		ClusterName:       cfg.ClusterName,
		BrokerCount:       cfg.Brokers.Count,
		SubnetCIDR:        cfg.Network.SubnetCIDR,
		KafkaVersion:      cfg.Kafka.Version,
		Partitions:        cfg.Kafka.Partitions,
		ReplicationFactor: cfg.Kafka.ReplicationFactor,
		MinInsyncReplicas: cfg.Kafka.MinInsyncReplicas,
		HCloudToken:       cfg.HCloudToken,
	}
	encoded, err := yaml.Marshal(bc)
	if err != nil {
		return "", fmt.Errorf("encoding bootstrap config: %w", err)
	}

	var buf bytes.Buffer
	err = userDataTmpl.Execute(&buf, struct {
		ConfigPath      string
		BootstrapConfig string
		BinaryURL       string
	}{
		ConfigPath:      bootstrap.DefaultConfigPath,
		BootstrapConfig: indent(string(encoded), 6),
		BinaryURL:       binaryURL,
	})
	if err != nil {
		return "", fmt.Errorf("rendering user data: %w", err)
	}
	return buf.String(), nil
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
