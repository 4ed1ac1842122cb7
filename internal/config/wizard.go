package config

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/kraftner/kraftner/internal/kafka"
)

// serverTypeOptions are the machine types offered by the wizard, smallest
// first. Kafka is memory-hungry; anything below 4GB is not offered.
var serverTypeOptions = []huh.Option[string]{
	huh.NewOption("CX32 - 4 vCPU, 8GB RAM", "cx32"),
	huh.NewOption("CX42 - 8 vCPU, 16GB RAM", "cx42"),
	huh.NewOption("CX52 - 16 vCPU, 32GB RAM", "cx52"),
	huh.NewOption("CPX31 - 4 vCPU, 8GB RAM (AMD)", "cpx31"),
	huh.NewOption("CPX41 - 8 vCPU, 16GB RAM (AMD)", "cpx41"),
	huh.NewOption("CPX51 - 16 vCPU, 32GB RAM (AMD)", "cpx51"),
}

// IsInteractive reports whether the wizard can run: stdin must be a TTY.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// RunWizard walks the user through a new cluster configuration and
// returns a validated Config. The API token is taken from HCLOUD_TOKEN
// when present, otherwise prompted for.
func RunWizard(ctx context.Context) (*Config, error) {
	cfg := &Config{
		Location: DefaultLocation,
		Network: NetworkConfig{
			IPv4CIDR:   DefaultNetworkCIDR,
			SubnetCIDR: DefaultSubnetCIDR,
			Zone:       DefaultNetworkZone,
		},
		Brokers: BrokerConfig{
			Count:      DefaultBrokerCount,
			ServerType: DefaultServerType,
			Image:      DefaultImage,
		},
		Kafka: KafkaConfig{
			Version: kafka.DefaultVersion(),
		},
	}
	cfg.HCloudToken = os.Getenv("HCLOUD_TOKEN")

	versionOpts := make([]huh.Option[string], 0, len(kafka.SupportedVersions))
	for _, v := range kafka.SupportedVersions {
		versionOpts = append(versionOpts, huh.NewOption("Kafka "+v, v))
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("Unique name for the cluster; also the broker hostname prefix").
				Placeholder("events").
				Value(&cfg.ClusterName).
				Validate(validateWizardClusterName),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Location").
				Description("Hetzner Cloud datacenter").
				Options(
					huh.NewOption("Nuremberg, Germany (nbg1)", "nbg1"),
					huh.NewOption("Falkenstein, Germany (fsn1)", "fsn1"),
					huh.NewOption("Helsinki, Finland (hel1)", "hel1"),
					huh.NewOption("Ashburn, USA (ash)", "ash"),
					huh.NewOption("Hillsboro, USA (hil)", "hil"),
					huh.NewOption("Singapore (sin)", "sin"),
				).
				Value(&cfg.Location),
		),

		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Broker count").
				Description("Odd counts give the KRaft quorum a clean majority").
				Options(
					huh.NewOption("1 broker (development)", 1),
					huh.NewOption("3 brokers", 3),
					huh.NewOption("5 brokers", 5),
					huh.NewOption("7 brokers", 7),
				).
				Value(&cfg.Brokers.Count),

			huh.NewSelect[string]().
				Title("Broker machine type").
				Options(serverTypeOptions...).
				Value(&cfg.Brokers.ServerType),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kafka version").
				Options(versionOpts...).
				Value(&cfg.Kafka.Version),
		),
	}

	var partitions, replication, minISR string
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Default partitions per topic").
			Placeholder(strconv.Itoa(DefaultPartitions)).
			Value(&partitions).
			Validate(validateOptionalPositiveInt),
		huh.NewInput().
			Title("Default replication factor").
			Description("Must not exceed the broker count").
			Placeholder("3").
			Value(&replication).
			Validate(validateOptionalPositiveInt),
		huh.NewInput().
			Title("Minimum in-sync replicas").
			Description("Must not exceed the replication factor").
			Placeholder("2").
			Value(&minISR).
			Validate(validateOptionalPositiveInt),
	))

	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Deploy Kafka UI addon?").
			Description("Web console deployed to an existing Kubernetes cluster via Helm").
			Value(&cfg.Addons.KafkaUI.Enabled),
		huh.NewConfirm().
			Title("Deploy kafka-exporter addon?").
			Value(&cfg.Addons.KafkaExporter.Enabled),
		huh.NewConfirm().
			Title("Deploy Schema Registry addon?").
			Value(&cfg.Addons.SchemaRegistry.Enabled),
		huh.NewConfirm().
			Title("Deploy kube-prometheus-stack addon?").
			Value(&cfg.Addons.KubePrometheusStack.Enabled),
	))

	if cfg.HCloudToken == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Hetzner Cloud API token").
				Description("Stored in the profile with 0600 permissions").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.HCloudToken).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("token is required")
					}
					return nil
				}),
		))
	}

	// Only shown when an addon was picked in the previous group.
	groups = append(groups, huh.NewGroup(
		huh.NewInput().
			Title("Kubeconfig path for addons").
			Placeholder("~/.kube/config").
			Value(&cfg.Addons.KubeconfigPath),
	).WithHideFunc(func() bool { return !cfg.Addons.AnyEnabled() }))

	if err := huh.NewForm(groups...).RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	cfg.Kafka.Partitions = parseIntOr(partitions, DefaultPartitions)
	cfg.Kafka.ReplicationFactor = parseIntOr(replication, 0)
	cfg.Kafka.MinInsyncReplicas = parseIntOr(minISR, 0)
	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateWizardClusterName(s string) error {
	if s == "" {
		return fmt.Errorf("cluster name is required")
	}
	if !clusterNamePattern.MatchString(s) {
		return fmt.Errorf("lowercase letters, digits, and dashes only, starting with a letter")
	}
	return nil
}

func validateOptionalPositiveInt(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
