package skill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// EventType identifies a notable moment of a resolution.
type EventType string

const (
	EventUsed            EventType = "used"
	EventPowerTier       EventType = "power_tier"
	EventSecondary       EventType = "secondary"
	EventDamage          EventType = "damage"
	EventHeal            EventType = "heal"
	EventStatusInflicted EventType = "status_inflicted"
	EventStatusAvoided   EventType = "status_avoided"
)

// Event is one diagnostic trace entry. Never parsed by the engine.
type Event struct {
	Skill    string
	Type     EventType
	Attacker string
	Defender string
	Value    int32
	Detail   string
}

// String renders the event as a single human-readable line.
func (e Event) String() string {
	switch e.Type {
	case EventUsed:
		return fmt.Sprintf("%s used %s on %s", e.Attacker, e.Skill, e.Defender)
	case EventPowerTier:
		return fmt.Sprintf("%s power %d (%s)", e.Skill, e.Value, e.Detail)
	case EventSecondary:
		return fmt.Sprintf("%s: %s triggered", e.Skill, e.Detail)
	case EventDamage:
		return fmt.Sprintf("%s deals %d damage to %s", e.Skill, e.Value, e.Defender)
	case EventHeal:
		return fmt.Sprintf("%s restores %d HP", e.Attacker, e.Value)
	case EventStatusInflicted:
		return fmt.Sprintf("%s is %s", e.Defender, e.Detail)
	case EventStatusAvoided:
		return fmt.Sprintf("%s avoided being %s", e.Defender, e.Detail)
	default:
		return fmt.Sprintf("%s: %s %d %s", e.Skill, e.Type, e.Value, e.Detail)
	}
}

// Tracer receives trace events. Implementations must not block.
type Tracer interface {
	Trace(e Event)
}

func emit(tr Tracer, e Event) {
	if tr != nil {
		tr.Trace(e)
	}
}

// NopTracer drops every event (headless deployment).
type NopTracer struct{}

func (NopTracer) Trace(Event) {}

// Multi fans events out to several tracers. Nil entries are skipped.
type Multi []Tracer

func (m Multi) Trace(e Event) {
	for _, t := range m {
		emit(t, e)
	}
}

// SlogTracer writes events to a slog.Logger at debug level.
type SlogTracer struct {
	Logger *slog.Logger
}

// NewSlogTracer returns a tracer on logger, or on slog.Default() if logger is nil.
func NewSlogTracer(logger *slog.Logger) *SlogTracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTracer{Logger: logger}
}

func (t *SlogTracer) Trace(e Event) {
	if !t.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	t.Logger.Debug(e.String(),
		"skill", e.Skill,
		"event", string(e.Type),
		"attacker", e.Attacker,
		"defender", e.Defender,
		"value", e.Value)
}

// Recorder collects events in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Trace(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Lines renders every recorded event, one line each.
func (r *Recorder) Lines() []string {
	events := r.Events()
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = e.String()
	}
	return lines
}

// Has reports whether an event of type t was recorded.
func (r *Recorder) Has(t EventType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = r.events[:0]
	r.mu.Unlock()
}
