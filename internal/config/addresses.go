package config

import (
	"fmt"
	"net"
)

// BrokerAddressOffset is the first host offset used for broker addresses
// inside the subnet. The low offsets stay free for the cloud gateway.
const BrokerAddressOffset = 10

// BrokerAddress returns the reserved private address for the broker with
// the given ordinal: subnet base + BrokerAddressOffset + ordinal.
//
// This mapping is the address-reservation contract the whole cluster
// depends on: the provisioner assigns these addresses at server creation,
// before any broker boots, and every broker re-derives the same ordinal to
// address mapping when it builds the quorum voter set.
func BrokerAddress(subnetCIDR string, ordinal int) (string, error) {
	if ordinal < 0 {
		return "", fmt.Errorf("ordinal must be non-negative, got %d", ordinal)
	}
	ip, subnet, err := net.ParseCIDR(subnetCIDR)
	if err != nil {
		return "", fmt.Errorf("invalid subnet %q: %w", subnetCIDR, err)
	}

	ip4 := ip.Mask(subnet.Mask).To4()
	if ip4 == nil {
		return "", fmt.Errorf("subnet %q is not an IPv4 range", subnetCIDR)
	}

	base := uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3])
	host := base + uint32(BrokerAddressOffset+ordinal)
	addr := net.IPv4(byte(host>>24), byte(host>>16), byte(host>>8), byte(host)).To4()

	if !subnet.Contains(addr) {
		return "", fmt.Errorf("broker %d address %s falls outside subnet %s", ordinal, addr, subnetCIDR)
	}
	return addr.String(), nil
}
