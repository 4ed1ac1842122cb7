package bootstrap

import (
	"fmt"
	"regexp"
	"strconv"
)

// ordinalPattern matches the trailing "-<integer>" of a broker hostname.
// The provisioner's naming scheme ({cluster}-broker-{ordinal}) guarantees
// a unique, dense ordinal per broker; a hostname without one means this
// VM was not created by the provisioner and bootstrap cannot proceed.
var ordinalPattern = regexp.MustCompile(`-(\d+)$`)

// ParseOrdinal extracts the broker ordinal from an instance hostname.
func ParseOrdinal(hostname string) (int, error) {
	m := ordinalPattern.FindStringSubmatch(hostname)
	if m == nil {
		return 0, fmt.Errorf("hostname %q has no trailing ordinal", hostname)
	}
	ordinal, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("hostname %q has unparsable ordinal %q: %w", hostname, m[1], err)
	}
	return ordinal, nil
}
