// Event provides the immutable event primitive for microstep transitions.
//
// Events are value types. Once created, Events should not be mutated.
// Use NewEvent for construction.
//
// The zero Event is the eventless marker used by the transient resolver:
// a transition keyed to the empty event type fires automatically after a
// microstep commits, without waiting for an external event.
package primitives

// Event is a tagged value consumed by exactly one microstep.
type Event struct {
	Type string `json:"type" yaml:"type"`
	Data any    `json:"data,omitempty" yaml:"data,omitempty"`
}

// Eventless is the sentinel "no event" used for initialization and
// transient transition resolution.
var Eventless = Event{}

// NewEvent creates and returns a new immutable Event.
func NewEvent(eventType string, data any) Event {
	return Event{
		Type: eventType,
		Data: data,
	}
}

// IsEventless reports whether e is the eventless marker.
func (e Event) IsEventless() bool {
	return e.Type == ""
}
