package kafka

import (
	"bytes"
	"text/template"
)

// ServiceUnit holds the parameters of the broker's systemd unit.
type ServiceUnit struct {
	User          string
	InstallDir    string
	ConfigPath    string
	HeapOpts      string
	RestartSecond int
}

// The supervisor restarts the server process on failure; it never re-runs
// the bootstrap itself.
const serviceUnitTemplate = `[Unit]
Description=Apache Kafka broker (KRaft mode)
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
User={{ .User }}
Group={{ .User }}
Environment="KAFKA_HEAP_OPTS={{ .HeapOpts }}"
ExecStart={{ .InstallDir }}/bin/kafka-server-start.sh {{ .ConfigPath }}
ExecStop={{ .InstallDir }}/bin/kafka-server-stop.sh
Restart=on-failure
RestartSec={{ .RestartSecond }}
LimitNOFILE=100000

[Install]
WantedBy=multi-user.target
`

var unitTmpl = template.Must(template.New("kafka.service").Parse(serviceUnitTemplate))

// RenderServiceUnit renders the systemd unit file content.
func RenderServiceUnit(u ServiceUnit) (string, error) {
	if u.User == "" {
		u.User = "kafka"
	}
	if u.InstallDir == "" {
		u.InstallDir = "/opt/kafka"
	}
	if u.ConfigPath == "" {
		u.ConfigPath = "/etc/kafka/server.properties"
	}
	if u.HeapOpts == "" {
		u.HeapOpts = "-Xms1g -Xmx1g"
	}
	if u.RestartSecond == 0 {
		u.RestartSecond = 5
	}

	var buf bytes.Buffer
	if err := unitTmpl.Execute(&buf, u); err != nil {
		return "", err
	}
	return buf.String(), nil
}
