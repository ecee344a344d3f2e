package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/comalice/microstep/internal/primitives"
)

// DefaultTransientLimit caps chained eventless microsteps per macrostep.
// Well beyond any legitimate chart depth; exceeding it signals an authoring
// bug (an unconditional or perpetually-true eventless cycle).
const DefaultTransientLimit = 10000

// ErrTransientCycle is returned when an eventless transition chain exceeds
// the configured limit. Fatal configuration error, never a silent truncation.
var ErrTransientCycle = errors.New("transient transition limit exceeded")

// TransitionRecord describes one committed microstep, delivered to the
// optional listener after the microstep's effects have run.
type TransitionRecord struct {
	MachineID string
	From      string
	Event     primitives.Event
	To        State
}

// Listener observes committed microsteps. It must not retain a mutable view
// of the State; the snapshot it receives is already committed and immutable.
type Listener func(TransitionRecord)

// Option applies configuration to Machine via functional options pattern.
type Option func(*Machine)

// Machine is the microstep engine for one chart definition. It holds no
// current state: callers own their State and replace it with each returned
// one. A Machine is read-only after construction and safe to share across
// goroutines, provided each caller serializes its own event stream.
type Machine struct {
	config         primitives.MachineConfig
	effects        EffectRunner
	logger         *slog.Logger
	transientLimit int
	listener       Listener
}

// NewMachine validates the chart definition and creates a Machine.
func NewMachine(config primitives.MachineConfig, opts ...Option) (*Machine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("machine config: %w", err)
	}

	m := &Machine{
		config:         config,
		effects:        DefaultEffectRunner{},
		logger:         slog.Default(),
		transientLimit: DefaultTransientLimit,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Config returns the machine's chart definition.
func (m *Machine) Config() primitives.MachineConfig {
	return m.config
}

// ID returns the machine's chart ID.
func (m *Machine) ID() string {
	return m.config.ID
}

// InitialState runs the engine once with the eventless trigger against the
// configured initial context, so entry-time assigns and transient transitions
// are already resolved before the initial State is exposed.
func (m *Machine) InitialState() (State, error) {
	seed := State{
		Value:   m.config.Initial,
		Context: primitives.NewContext(m.config.Context),
	}
	return m.settle(seed)
}

// Send processes one external event to settlement: one microstep for the
// event followed by any chained eventless microsteps (a macrostep).
// Run-to-completion: the call returns only once the state is fully settled.
//
// An event with no enabled transition returns the input State unchanged.
// On error, Send returns the last fully-committed State (the zero State if
// the first microstep failed before committing) together with the error.
func (m *Machine) Send(state State, event primitives.Event) (State, error) {
	next, matched, err := m.Step(state, event)
	if err != nil {
		return next, err
	}
	if !matched {
		return state, nil
	}
	return m.settle(next)
}

// Step applies at most one transition for event against state: one microstep.
// matched reports whether any transition fired; a no-match returns the input
// State unchanged, which is a valid terminal outcome, not an error.
//
// Within the microstep, all assigns are applied before any effect runs,
// regardless of their relative order in the definition. Effects observe the
// final committed context. Guard and assigner errors abandon the microstep
// with nothing committed; an effect error is reported after commit, alongside
// the committed State.
func (m *Machine) Step(state State, event primitives.Event) (State, bool, error) {
	trans, ok, err := m.selectTransition(state, event)
	if err != nil {
		return State{}, false, err
	}
	if !ok {
		return state, false, nil
	}

	assigns, effects := primitives.PartitionActions(trans.Actions)

	newContext, err := ApplyBatch(state.Context, event, assigns)
	if err != nil {
		return State{}, false, fmt.Errorf("state %q, event %q: %w", state.Value, event.Type, err)
	}

	value := trans.Target
	if value == "" {
		value = state.Value
	}
	committed := State{Value: value, Context: newContext}

	if err := runEffects(m.effects, committed, event, effects); err != nil {
		return committed, true, err
	}

	m.logger.Debug("microstep committed",
		"machine", m.config.ID,
		"from", state.Value,
		"event", event.Type,
		"to", committed.Value,
	)

	if m.listener != nil {
		m.listener(TransitionRecord{
			MachineID: m.config.ID,
			From:      state.Value,
			Event:     event,
			To:        committed,
		})
	}

	return committed, true, nil
}

// selectTransition picks the first transition in document order whose guard
// passes against (state.Context, event). Absence of a guard means enabled.
func (m *Machine) selectTransition(state State, event primitives.Event) (primitives.TransitionConfig, bool, error) {
	for _, trans := range m.config.TransitionsFor(state.Value, event.Type) {
		pass, err := evalGuard(trans.Guard, state.Context, event)
		if err != nil {
			return primitives.TransitionConfig{}, false,
				fmt.Errorf("guard (state %q, event %q): %w", state.Value, event.Type, err)
		}
		if pass {
			return trans, true, nil
		}
	}
	return primitives.TransitionConfig{}, false, nil
}

// evalGuard evaluates a guard predicate; nil guards always pass.
func evalGuard(guard primitives.GuardFn, ctx primitives.Context, event primitives.Event) (bool, error) {
	if guard == nil {
		return true, nil
	}
	return guard(ctx, event)
}

// settle repeatedly runs eventless microsteps until none is enabled, then
// returns the settled State. The iteration count is bounded by the configured
// transient limit; exceeding it returns ErrTransientCycle with the last
// committed State.
func (m *Machine) settle(state State) (State, error) {
	for i := 0; i < m.transientLimit; i++ {
		next, matched, err := m.Step(state, primitives.Eventless)
		if err != nil {
			if next.Value != "" {
				// Post-commit (effect) failure: surface the committed State.
				return next, err
			}
			return state, err
		}
		if !matched {
			return state, nil
		}
		state = next
	}

	return state, fmt.Errorf("state %q after %d eventless microsteps: %w",
		state.Value, m.transientLimit, ErrTransientCycle)
}
