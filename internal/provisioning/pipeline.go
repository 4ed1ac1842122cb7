package provisioning

import (
	"fmt"
	"time"
)

// Phase is a single stage of cluster provisioning.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the phase against the shared context.
	Provision(ctx *Context) error
}

// RunPhases executes all provisioning phases sequentially, stopping at
// the first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: phase.Name(), Message: "starting"})

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: phase.Name(), Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
