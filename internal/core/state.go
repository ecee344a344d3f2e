// Package core provides the runtime core tier of the microstep engine:
// the State pair, the assign batcher, the effect scheduler, the microstep
// engine, and the transient transition resolver.
// Dependencies: internal/primitives.
// Stdlib-only implementation.
//
//go:generate go test ./...
package core

import (
	"time"

	"github.com/comalice/microstep/internal/primitives"
)

// State is the (finite-state value, extended-state snapshot) pair produced
// by every microstep. Immutable once constructed; the engine returns a new
// State per step and never patches one in place.
type State struct {
	Value   string             `json:"value" yaml:"value"`
	Context primitives.Context `json:"context" yaml:"context"`
}

// NewState constructs a State over a copy of the given context data.
func NewState(value string, data map[string]any) State {
	return State{
		Value:   value,
		Context: primitives.NewContext(data),
	}
}

// Equal reports structural equality of two States.
func (s State) Equal(other State) bool {
	return s.Value == other.Value && s.Context.Equal(other.Context)
}

// StateSnapshot is the serializable observation of a settled State,
// consumed by external tooling (persistence, logging, snapshot diffing).
type StateSnapshot struct {
	MachineID string         `json:"machineID" yaml:"machineID"`
	Value     string         `json:"value" yaml:"value"`
	Context   map[string]any `json:"context" yaml:"context"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Snapshot captures the observable shape of a State for a machine.
func (s State) Snapshot(machineID string) StateSnapshot {
	return StateSnapshot{
		MachineID: machineID,
		Value:     s.Value,
		Context:   s.Context.Snapshot(),
		Timestamp: time.Now(),
	}
}

// RestoreState reconstructs a State from a snapshot.
func RestoreState(snapshot StateSnapshot) State {
	return NewState(snapshot.Value, snapshot.Context)
}
