package infrastructure

import (
	"fmt"
	"net"
	"strconv"

	"github.com/kraftner/kraftner/internal/kafka"
	"github.com/kraftner/kraftner/internal/provisioning"
	"github.com/kraftner/kraftner/internal/util/labels"
	"github.com/kraftner/kraftner/internal/util/naming"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// anyIPv4 and anyIPv6 admit traffic from anywhere.
var (
	anyIPv4 = mustCIDR("0.0.0.0/0")
	anyIPv6 = mustCIDR("::/0")
)

// ProvisionFirewall ensures the cluster firewall. The controller port
// is only reachable from inside the private network; client and admin
// ports accept external traffic.
func (p *Provisioner) ProvisionFirewall(ctx *provisioning.Context) error {
	name := naming.Firewall(ctx.Config.ClusterName)
	provisioning.LogResourceCreating(ctx.Observer, phase, "firewall", name)

	_, privateNet, err := net.ParseCIDR(ctx.Config.Network.IPv4CIDR)
	if err != nil {
		return fmt.Errorf("parsing network CIDR: %w", err)
	}

	rules := []hcloud.FirewallRule{
		{
			Description: hcloud.Ptr("SSH admin access"),
			Direction:   hcloud.FirewallRuleDirectionIn,
			Protocol:    hcloud.FirewallRuleProtocolTCP,
			Port:        hcloud.Ptr("22"),
			SourceIPs:   []net.IPNet{anyIPv4, anyIPv6},
		},
		{
			Description: hcloud.Ptr("Kafka client traffic"),
			Direction:   hcloud.FirewallRuleDirectionIn,
			Protocol:    hcloud.FirewallRuleProtocolTCP,
			Port:        hcloud.Ptr(strconv.Itoa(kafka.ClientPort)),
			SourceIPs:   []net.IPNet{anyIPv4, anyIPv6},
		},
		{
			Description: hcloud.Ptr("KRaft controller quorum (cluster internal)"),
			Direction:   hcloud.FirewallRuleDirectionIn,
			Protocol:    hcloud.FirewallRuleProtocolTCP,
			Port:        hcloud.Ptr(strconv.Itoa(kafka.ControllerPort)),
			SourceIPs:   []net.IPNet{*privateNet},
		},
	}

	firewallLabels := labels.NewBuilder(ctx.Config.ClusterName).Build()
	applyTo := labels.ClusterSelector(ctx.Config.ClusterName)

	firewall, err := ctx.Infra.EnsureFirewall(ctx, name, rules, firewallLabels, applyTo)
	if err != nil {
		return fmt.Errorf("failed to ensure firewall: %w", err)
	}
	ctx.State.Firewall = firewall

	ctx.Observer.Printf("[%s] firewall %s applies to selector %s", phase, name, applyTo)
	return nil
}

func mustCIDR(s string) net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return *n
}
