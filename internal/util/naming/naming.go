// Package naming provides consistent naming for cluster resources.
//
// Infrastructure resources follow {cluster}-{type}; broker servers follow
// {cluster}-broker-{ordinal}. The trailing ordinal is load-bearing: the
// bootstrap coordinator on each VM parses it back out of the hostname to
// derive its KRaft node ID, so the scheme must stay dense and gap-free.
package naming

import "fmt"

func Network(cluster string) string {
	return fmt.Sprintf("%s-net", cluster)
}

func Firewall(cluster string) string {
	return fmt.Sprintf("%s-fw", cluster)
}

func SSHKey(cluster string) string {
	return fmt.Sprintf("%s-admin", cluster)
}

// Broker returns the server name for the broker with the given ordinal.
func Broker(cluster string, ordinal int) string {
	return fmt.Sprintf("%s-broker-%d", cluster, ordinal)
}
