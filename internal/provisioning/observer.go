package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal logging surface phases depend on.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured events while provisioning runs. The CLI
// installs a console observer; tests install a recording one.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)

	// Progress reports progress within a long-running phase.
	Progress(phase string, current, total int)
}

// Event is a single structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Resource  string
	Message   string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType classifies provisioning events.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	EventResourceCreating EventType = "resource.creating"
	EventResourceCreated  EventType = "resource.created"
	EventResourceExists   EventType = "resource.exists"
	EventResourceDeleted  EventType = "resource.deleted"

	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver writes events through the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	parts := []string{string(event.Type)}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)
	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}
	log.Print(strings.Join(parts, " "))
}

func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		log.Printf("[%s] progress: %d/%d", phase, current, total)
		return
	}
	log.Printf("[%s] progress: %d/%d (%d%%)", phase, current, total, (current*100)/total)
}

// LogResourceCreating logs the start of a resource creation.
func LogResourceCreating(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreating,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("creating %s", resourceType),
	})
}

// LogResourceCreated logs a successful resource creation.
func LogResourceCreated(observer Observer, phase, resourceType, resourceName, resourceID string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
		Fields:   map[string]string{"id": resourceID},
	})
}

// LogResourceExists logs that a resource was found instead of created.
func LogResourceExists(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already exists", resourceType),
	})
}
