// Package primitives defines the foundational data structures for the microstep engine.
// StateConfig represents one finite-state node with its ordered transitions
// keyed by event type. Compound or parallel charts are treated atomically here:
// a finite-state value is an opaque identifier.
package primitives

import (
	"errors"
	"fmt"
)

// TransientEvent is the On-map key for eventless (transient) transitions.
const TransientEvent = ""

// StateConfig defines a state and its outgoing transitions.
// Within one event key, transitions are tried in document order and the
// first whose guard passes is selected.
type StateConfig struct {
	ID string                        `json:"id" yaml:"id"`
	On map[string][]TransitionConfig `json:"on,omitempty" yaml:"on,omitempty"`
}

// NewStateConfig creates a new StateConfig with the given ID.
func NewStateConfig(id string) *StateConfig {
	return &StateConfig{ID: id}
}

// AddTransition adds a transition for an event, preserving document order.
// The transition's Event field is normalized to the key.
func (s *StateConfig) AddTransition(event string, trans TransitionConfig) *StateConfig {
	if s.On == nil {
		s.On = make(map[string][]TransitionConfig)
	}
	trans.Event = event
	s.On[event] = append(s.On[event], trans)
	return s
}

// Transition adds a simple transition from event to target.
// Optionally override with a full TransitionConfig via the third arg:
// .Transition("evt", "target") or .Transition("evt", "target", TransitionConfig{Guard: fn}).
func (s *StateConfig) Transition(event, target string, transOpts ...TransitionConfig) *StateConfig {
	trans := TransitionConfig{Target: target}
	if len(transOpts) > 0 {
		trans = transOpts[0]
		trans.Target = target
	}
	return s.AddTransition(event, trans)
}

// Always adds an eventless (transient) transition to target.
func (s *StateConfig) Always(target string, transOpts ...TransitionConfig) *StateConfig {
	trans := TransitionConfig{Target: target}
	if len(transOpts) > 0 {
		trans = transOpts[0]
		trans.Target = target
	}
	return s.AddTransition(TransientEvent, trans)
}

// Transitions returns the ordered transitions for an event type.
// Returns nil when the state has none for that event.
func (s *StateConfig) Transitions(event string) []TransitionConfig {
	if s.On == nil {
		return nil
	}
	return s.On[event]
}

// Validate performs validation of the StateConfig and its transitions.
func (s *StateConfig) Validate() error {
	if s.ID == "" {
		return errors.New("state ID is required")
	}
	if err := validateStateID(s.ID); err != nil {
		return fmt.Errorf("state ID %q: %w", s.ID, err)
	}
	for event, transitions := range s.On {
		for i := range transitions {
			trans := transitions[i]
			if trans.Event != event {
				return fmt.Errorf("state %s: transition %d under event %q carries event %q", s.ID, i, event, trans.Event)
			}
			if err := trans.Validate(); err != nil {
				return fmt.Errorf("state %s, event %q, transition %d: %w", s.ID, event, i, err)
			}
		}
	}
	return nil
}
