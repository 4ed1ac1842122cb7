// Package kafka holds the Kafka-specific knowledge shared by the
// provisioner and the bootstrap coordinator: supported distribution
// versions, listener ports, and the rendered artifacts (server.properties,
// systemd unit) a broker VM needs before the server process can start.
package kafka

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// Listener ports. The firewall, the voter string, and the rendered
// configuration all agree on these.
const (
	// ClientPort is the data-plane listener every client connects to.
	ClientPort = 9092
	// ControllerPort is the KRaft metadata-quorum listener.
	ControllerPort = 9093
)

// ScalaVersion is the Scala build the pinned distributions are published for.
const ScalaVersion = "2.13"

// SupportedVersions lists the distribution versions the provisioner offers.
// Ordered oldest to newest; the last entry is the default.
var SupportedVersions = []string{
	"3.3.1",
	"3.4.0",
	"3.4.1",
	"3.5.0",
	"3.5.1",
	"3.6.0",
}

// DefaultVersion returns the newest supported version.
func DefaultVersion() string {
	return SupportedVersions[len(SupportedVersions)-1]
}

// IsSupported reports whether version is a known distribution version.
func IsSupported(version string) bool {
	for _, v := range SupportedVersions {
		if v == version {
			return true
		}
	}
	return false
}

// DownloadURL returns the Apache archive URL for the pinned distribution.
func DownloadURL(version string) string {
	return fmt.Sprintf("https://archive.apache.org/dist/kafka/%s/kafka_%s-%s.tgz", version, ScalaVersion, version)
}

// GenerateClusterID returns a fresh cluster identifier in the format
// kafka-storage expects: a random UUID, base64url-encoded without padding.
func GenerateClusterID() string {
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}
