// Package main is the entry point for the kraftner CLI.
//
// kraftner provisions KRaft-mode Apache Kafka clusters on Hetzner
// Cloud: it creates the network, firewall, and broker servers, and each
// broker configures itself at first boot from nothing but its hostname
// and a small config file. No ZooKeeper, no configuration management
// tooling on the VMs.
//
// Commands: init, apply, destroy, health, profile, addons, bootstrap.
//
// For detailed usage information, run:
//
//	kraftner --help
package main

import (
	"fmt"
	"os"

	"github.com/kraftner/kraftner/cmd/kraftner/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
