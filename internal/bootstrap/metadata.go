package bootstrap

import (
	"os"

	"github.com/hetznercloud/hcloud-go/v2/hcloud/metadata"
)

// InstanceHostname returns this broker's name as assigned at creation
// time, preferring the cloud metadata service since the OS hostname may
// not be set yet during early boot. The trailing ordinal in the name
// determines the node ID.
func InstanceHostname() (string, error) {
	client := metadata.NewClient()
	if client.IsHcloudServer() {
		if name, err := client.Hostname(); err == nil && name != "" {
			return name, nil
		}
	}
	name, err := os.Hostname()
	if err != nil {
		return "", err
	}
	return name, nil
}
