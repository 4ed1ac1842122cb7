package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/kraftner/kraftner/internal/kafka"
	platform "github.com/kraftner/kraftner/internal/platform/hcloud"
)

const (
	kafkaUser    = "kafka"
	installDir   = "/opt/kafka"
	configDir    = "/etc/kafka"
	dataDir      = "/var/lib/kafka/data"
	serverConfig = "/etc/kafka/server.properties"
	serviceName  = "kafka.service"
	firstNode    = 0
)

// Coordinator drives a single broker through the bootstrap sequence:
// system prep, distribution install, quorum rendezvous, configuration,
// service supervision, and first-node storage formatting. Completed
// steps are recorded so a rerun resumes where the previous run stopped.
type Coordinator struct {
	System   System
	Peers    PeerDirectory
	StateDir string
	Hostname func() (string, error)
	Fetch    func(ctx context.Context, version, installDir string) error
}

// NewCoordinator wires a coordinator against the real host. Peer
// addresses come from the cloud API when a token is configured,
// otherwise from the subnet plan alone.
func NewCoordinator(cfg Config) *Coordinator {
	var peers PeerDirectory = PlanDirectory{SubnetCIDR: cfg.SubnetCIDR}
	if cfg.HCloudToken != "" {
		peers = CloudDirectory{
			Servers:     platform.NewRealClient(cfg.HCloudToken),
			ClusterName: cfg.ClusterName,
		}
	}
	return &Coordinator{
		System:   HostSystem{},
		Peers:    peers,
		StateDir: DefaultStateDir,
		Hostname: InstanceHostname,
		Fetch:    FetchDistribution,
	}
}

// Run executes the bootstrap sequence and always writes a terminal
// status before returning. The returned error carries the underlying
// failure; the status classifies it.
func (c *Coordinator) Run(ctx context.Context, cfg Config) error {
	ordinal, err := c.identify(cfg)
	if err != nil {
		c.finish(Status{Outcome: OutcomeConfigError, NodeID: -1, Message: err.Error()})
		return err
	}

	outcome, err := c.sequence(ctx, cfg, ordinal)
	st := Status{Outcome: outcome, NodeID: ordinal}
	if err != nil {
		st.Message = err.Error()
	}
	c.finish(st)
	return err
}

func (c *Coordinator) identify(cfg Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	hostname, err := c.Hostname()
	if err != nil {
		return 0, fmt.Errorf("determining hostname: %w", err)
	}
	ordinal, err := ParseOrdinal(hostname)
	if err != nil {
		return 0, err
	}
	if ordinal >= cfg.BrokerCount {
		return 0, fmt.Errorf("ordinal %d out of range for %d-broker cluster", ordinal, cfg.BrokerCount)
	}
	return ordinal, nil
}

func (c *Coordinator) sequence(ctx context.Context, cfg Config, ordinal int) (Outcome, error) {
	progress, err := LoadProgress(c.StateDir)
	if err != nil {
		return OutcomeTransientError, err
	}

	if !progress.Done(StepDepsInstalled) {
		log.Printf("bootstrap: preparing system (node %d)", ordinal)
		if err := c.prepare(ctx); err != nil {
			return OutcomeTransientError, err
		}
		if err := progress.Record(StepDepsInstalled); err != nil {
			return OutcomeTransientError, err
		}
	}

	if !progress.Done(StepDistributionReady) {
		log.Printf("bootstrap: installing kafka %s", cfg.KafkaVersion)
		if err := c.Fetch(ctx, cfg.KafkaVersion, installDir); err != nil {
			return OutcomeTransientError, err
		}
		if err := c.System.EnsureDirs(ctx, kafkaUser, installDir); err != nil {
			return OutcomeTransientError, err
		}
		if err := progress.Record(StepDistributionReady); err != nil {
			return OutcomeTransientError, err
		}
	}

	log.Printf("bootstrap: resolving %d-peer quorum", cfg.BrokerCount)
	peers, err := ResolveQuorum(ctx, c.Peers, cfg.BrokerCount)
	if err != nil {
		return OutcomeQuorumIncomplete, err
	}
	voters := FormatVoters(peers, kafka.ControllerPort)
	if err := VerifyVoters(voters, cfg.BrokerCount, kafka.ControllerPort); err != nil {
		return OutcomeQuorumIncomplete, err
	}

	if !progress.Done(StepConfigWritten) {
		props, err := c.renderConfig(cfg, ordinal, peers, voters)
		if err != nil {
			return OutcomeConfigError, err
		}
		if err := c.System.WriteFile(serverConfig, []byte(props), 0o644); err != nil {
			return OutcomeTransientError, fmt.Errorf("writing %s: %w", serverConfig, err)
		}
		if err := progress.Record(StepConfigWritten); err != nil {
			return OutcomeTransientError, err
		}
	}

	if !progress.Done(StepServiceEnabled) {
		log.Printf("bootstrap: enabling %s", serviceName)
		if err := c.enableService(ctx); err != nil {
			return OutcomeTransientError, err
		}
		if err := progress.Record(StepServiceEnabled); err != nil {
			return OutcomeTransientError, err
		}
	}

	if ordinal == firstNode && !progress.Done(StepFormatted) {
		clusterID := kafka.GenerateClusterID()
		log.Printf("bootstrap: formatting storage with cluster ID %s", clusterID)
		if err := c.System.FormatStorage(ctx, installDir, serverConfig, clusterID); err != nil {
			return OutcomeTransientError, fmt.Errorf("formatting storage: %w", err)
		}
		if err := progress.Record(StepFormatted); err != nil {
			return OutcomeTransientError, err
		}
	}

	return OutcomeOK, nil
}

func (c *Coordinator) prepare(ctx context.Context) error {
	if err := c.System.EnsureUser(ctx, kafkaUser); err != nil {
		return fmt.Errorf("ensuring user: %w", err)
	}
	if err := c.System.EnsureDirs(ctx, kafkaUser, configDir, dataDir); err != nil {
		return fmt.Errorf("ensuring directories: %w", err)
	}
	if err := c.System.InstallDeps(ctx); err != nil {
		return fmt.Errorf("installing dependencies: %w", err)
	}
	return nil
}

// renderConfig produces this broker's server properties. Failures here
// come from the inputs, not the host: a re-run hits the same error, so
// callers classify them as config errors. Writing the result to disk is
// a separate, retryable concern.
func (c *Coordinator) renderConfig(cfg Config, ordinal int, peers []Peer, voters string) (string, error) {
	var own string
	for _, p := range peers {
		if p.ID == ordinal {
			own = p.Address
		}
	}
	if own == "" {
		return "", fmt.Errorf("own ordinal %d missing from resolved quorum", ordinal)
	}

	return kafka.RenderServerProperties(kafka.ServerProperties{
		NodeID:            ordinal,
		QuorumVoters:      voters,
		AdvertisedAddress: own,
		DataDir:           dataDir,
		Partitions:        cfg.Partitions,
		ReplicationFactor: cfg.ReplicationFactor,
		MinInsyncReplicas: cfg.MinInsyncReplicas,
	})
}

func (c *Coordinator) enableService(ctx context.Context) error {
	unit, err := kafka.RenderServiceUnit(kafka.ServiceUnit{})
	if err != nil {
		return err
	}
	if err := c.System.InstallUnit(ctx, serviceName, []byte(unit)); err != nil {
		return fmt.Errorf("installing unit: %w", err)
	}
	if err := c.System.EnableUnit(ctx, serviceName); err != nil {
		return fmt.Errorf("enabling unit: %w", err)
	}
	return nil
}

func (c *Coordinator) finish(st Status) {
	if err := WriteStatus(c.StateDir, st); err != nil {
		log.Printf("bootstrap: writing status: %v", err)
	}
	log.Printf("bootstrap: finished with outcome %s", st.Outcome)
}
