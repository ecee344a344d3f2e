// Package primitives defines the foundational data structures for the microstep engine.
// TransitionConfig defines transitions between states with guards, targets, and actions.
// Transitions keyed to the empty event type are transient (eventless): they are
// evaluated automatically after a microstep commits.
// Guards and actions are pre-resolved callables; the engine never performs
// name-based dispatch at step time.
package primitives

import (
	"fmt"
)

// TransitionConfig defines a single transition belonging to one source state.
// An empty Target means an internal transition: the machine stays in the
// source state but the transition's actions still run.
type TransitionConfig struct {
	Event   string       `json:"event,omitempty" yaml:"event,omitempty"`
	Guard   GuardFn      `json:"-" yaml:"-"`
	Target  string       `json:"target,omitempty" yaml:"target,omitempty"`
	Actions []ActionSpec `json:"-" yaml:"-"`
}

// Transient reports whether this is an eventless transition.
func (t *TransitionConfig) Transient() bool {
	return t.Event == ""
}

// Internal reports whether this transition keeps the source state.
func (t *TransitionConfig) Internal() bool {
	return t.Target == ""
}

// Validate checks TransitionConfig fields and target syntax.
func (t *TransitionConfig) Validate() error {
	if t.Target != "" {
		if err := validateStateID(t.Target); err != nil {
			return fmt.Errorf("invalid target %q: %w", t.Target, err)
		}
	}
	for i, action := range t.Actions {
		if err := action.Validate(); err != nil {
			return fmt.Errorf("action %d: %w", i, err)
		}
	}
	return nil
}

// validateStateID enforces basic ID syntax: non-empty, alphanumeric plus
// underscores, hyphens and dots.
func validateStateID(id string) error {
	if id == "" {
		return fmt.Errorf("empty state ID")
	}
	for _, r := range id {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.') {
			return fmt.Errorf("invalid character %q", r)
		}
	}
	return nil
}
