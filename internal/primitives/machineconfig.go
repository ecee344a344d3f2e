// Package primitives defines the foundational data structures for the microstep engine.
//
// MachineConfig represents the fully-resolved definition of a chart,
// containing the machine ID, initial state, initial extended-state data,
// and a flat map of all states by ID. Guards and actions are concrete
// callables resolved by an external collaborator before construction.
// Validation ensures ID/Initial presence, state validity, target existence,
// and no orphans.
package primitives

import (
	"errors"
	"fmt"
)

// MachineConfig defines the complete chart configuration consumed by the engine.
type MachineConfig struct {
	ID      string                  `json:"id" yaml:"id"`
	Initial string                  `json:"initial" yaml:"initial"`
	Context map[string]any          `json:"context,omitempty" yaml:"context,omitempty"`
	States  map[string]*StateConfig `json:"states" yaml:"states"`
}

// Validate validates the entire machine configuration:
// - Non-empty ID and Initial
// - Initial exists in States
// - All individual states validate
// - All transition targets exist in States
// - No orphaned states (all reachable from Initial)
func (m *MachineConfig) Validate() error {
	if m.ID == "" {
		return errors.New("machine ID is required")
	}
	if m.Initial == "" {
		return errors.New("initial state ID is required")
	}
	if len(m.States) == 0 {
		return errors.New("states map is required and cannot be empty")
	}
	if _, ok := m.States[m.Initial]; !ok {
		return fmt.Errorf("initial state %q not found in states", m.Initial)
	}

	for sid, state := range m.States {
		if state == nil {
			return fmt.Errorf("state %q is nil", sid)
		}
		if state.ID != sid {
			return fmt.Errorf("state keyed %q carries ID %q", sid, state.ID)
		}
		if err := state.Validate(); err != nil {
			return fmt.Errorf("state %q validation failed: %w", sid, err)
		}
	}

	for sid, state := range m.States {
		for event, transitions := range state.On {
			for i, trans := range transitions {
				if trans.Target != "" {
					if _, exists := m.States[trans.Target]; !exists {
						return fmt.Errorf("invalid transition target %q (state %q, event %q, transition %d)", trans.Target, sid, event, i)
					}
				}
			}
		}
	}

	// Check no orphaned states via reachability.
	visited := make(map[string]bool)
	m.markReachable(m.Initial, visited)
	for sid := range m.States {
		if !visited[sid] {
			return fmt.Errorf("orphaned state %q (not reachable from initial %q)", sid, m.Initial)
		}
	}

	return nil
}

// markReachable recursively marks states reachable via transition targets.
func (m *MachineConfig) markReachable(id string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	state, ok := m.States[id]
	if !ok {
		return
	}
	for _, transitions := range state.On {
		for _, trans := range transitions {
			if trans.Target != "" {
				m.markReachable(trans.Target, visited)
			}
		}
	}
}

// FindState resolves a state by ID.
func (m *MachineConfig) FindState(id string) (*StateConfig, error) {
	if id == "" {
		return nil, errors.New("state ID cannot be empty")
	}
	state, ok := m.States[id]
	if !ok {
		return nil, fmt.Errorf("state %q not found", id)
	}
	return state, nil
}

// TransitionsFor returns the ordered transition candidates for a source
// state and event type. A missing state yields nil.
func (m *MachineConfig) TransitionsFor(stateID, eventType string) []TransitionConfig {
	state, ok := m.States[stateID]
	if !ok {
		return nil
	}
	return state.Transitions(eventType)
}

// AddState registers a state, replacing any previous state with the same ID.
func (m *MachineConfig) AddState(state *StateConfig) *MachineConfig {
	if m.States == nil {
		m.States = make(map[string]*StateConfig)
	}
	m.States[state.ID] = state
	return m
}
