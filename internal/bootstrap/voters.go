package bootstrap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Peer is one member of the controller quorum.
type Peer struct {
	ID      int
	Address string
}

// FormatVoters renders the controller.quorum.voters string:
// "{id}@{address}:{port}" per peer, comma-joined in ordinal order.
// The ordering is cosmetic; what matters is that every broker derives
// the same set of (id, address) pairs.
func FormatVoters(peers []Peer, port int) string {
	sorted := make([]Peer, len(peers))
	copy(sorted, peers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	parts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		parts = append(parts, fmt.Sprintf("%d@%s:%d", p.ID, p.Address, port))
	}
	return strings.Join(parts, ",")
}

// VerifyVoters checks a rendered voter string against the declared
// cluster size before any broker-visible state is written: it must list
// exactly expectCount entries with dense unique IDs 0..N-1 and no
// duplicated address. A failure here means a peer resolved incompletely
// or an ordinal collision slipped through — proceeding would split the
// cluster, so the coordinator treats it as a quorum-incomplete outcome.
func VerifyVoters(voters string, expectCount int, port int) error {
	if voters == "" {
		return fmt.Errorf("voter string is empty, expected %d entries", expectCount)
	}
	entries := strings.Split(voters, ",")
	if len(entries) != expectCount {
		return fmt.Errorf("voter string has %d entries, expected %d", len(entries), expectCount)
	}

	seenIDs := make(map[int]bool, expectCount)
	seenAddrs := make(map[string]bool, expectCount)
	wantSuffix := ":" + strconv.Itoa(port)

	for _, entry := range entries {
		idPart, addrPart, ok := strings.Cut(entry, "@")
		if !ok {
			return fmt.Errorf("malformed voter entry %q", entry)
		}
		id, err := strconv.Atoi(idPart)
		if err != nil {
			return fmt.Errorf("malformed voter node ID in %q: %w", entry, err)
		}
		if id < 0 || id >= expectCount {
			return fmt.Errorf("voter node ID %d out of range [0,%d)", id, expectCount)
		}
		if seenIDs[id] {
			return fmt.Errorf("duplicate voter node ID %d", id)
		}
		seenIDs[id] = true

		if !strings.HasSuffix(addrPart, wantSuffix) {
			return fmt.Errorf("voter entry %q does not use controller port %d", entry, port)
		}
		addr := strings.TrimSuffix(addrPart, wantSuffix)
		if addr == "" {
			return fmt.Errorf("voter entry %q has empty address", entry)
		}
		if seenAddrs[addr] {
			return fmt.Errorf("duplicate voter address %s", addr)
		}
		seenAddrs[addr] = true
	}
	return nil
}
