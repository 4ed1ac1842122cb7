package provisioning

import (
	"fmt"
	"strings"

	"github.com/kraftner/kraftner/internal/config"
)

// ValidationError is a single pre-flight finding.
type ValidationError struct {
	Field    string
	Message  string
	Severity string // "error" or "warning"
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError reports whether this finding blocks provisioning.
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase runs pre-flight checks before any cloud resource is
// touched. Everything that would make the bootstrap fail on the VMs —
// an unreservable broker address, a replication factor the cluster
// cannot satisfy — must surface here instead.
type ValidationPhase struct{}

// NewValidationPhase creates the pre-flight validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

func (vp *ValidationPhase) Name() string {
	return "validation"
}

func (vp *ValidationPhase) Provision(ctx *Context) error {
	findings := validate(ctx.Config)

	var errs []ValidationError
	for _, f := range findings {
		if f.IsError() {
			errs = append(errs, f)
			continue
		}
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: f.Message,
		})
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(msgs, "\n  "))
	}

	ctx.Observer.Printf("[validation] passed")
	return nil
}

func validate(cfg *config.Config) []ValidationError {
	var findings []ValidationError

	if err := cfg.Validate(); err != nil {
		findings = append(findings, ValidationError{
			Field:    "config",
			Message:  err.Error(),
			Severity: "error",
		})
	}

	// Every broker address must be derivable before a single server
	// exists: the bootstrap on each VM recomputes the same addresses.
	for ordinal := 0; ordinal < cfg.Brokers.Count; ordinal++ {
		if _, err := config.BrokerAddress(cfg.Network.SubnetCIDR, ordinal); err != nil {
			findings = append(findings, ValidationError{
				Field:    "network.subnet_cidr",
				Message:  fmt.Sprintf("broker %d: %v", ordinal, err),
				Severity: "error",
			})
		}
	}

	if cfg.Brokers.Count == 1 {
		findings = append(findings, ValidationError{
			Field:    "brokers.count",
			Message:  "single-broker cluster has no fault tolerance",
			Severity: "warning",
		})
	}
	if cfg.Brokers.Count > 1 && cfg.Brokers.Count%2 == 0 {
		findings = append(findings, ValidationError{
			Field:    "brokers.count",
			Message:  fmt.Sprintf("even broker count %d tolerates no more failures than %d", cfg.Brokers.Count, cfg.Brokers.Count-1),
			Severity: "warning",
		})
	}
	if cfg.Kafka.MinInsyncReplicas == cfg.Kafka.ReplicationFactor && cfg.Kafka.ReplicationFactor > 1 {
		findings = append(findings, ValidationError{
			Field:    "kafka.min_insync_replicas",
			Message:  "min.insync.replicas equals replication factor, any broker loss blocks producers",
			Severity: "warning",
		})
	}

	return findings
}
