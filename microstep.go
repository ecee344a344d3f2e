package microstep

import (
	"log/slog"

	"github.com/comalice/microstep/internal/core"
	"github.com/comalice/microstep/internal/primitives"
)

// Re-export key types so users don't need to dig into internal packages.
type (
	// Context is the immutable extended-state snapshot.
	Context = primitives.Context
	// Event is the tagged value consumed by exactly one microstep.
	Event = primitives.Event
	// ActionSpec is the tagged union of assign and effect actions.
	ActionSpec = primitives.ActionSpec
	// MergePolicy declares how a whole-context assigner's result is applied.
	MergePolicy = primitives.MergePolicy
	// GuardFn is a pure predicate gating whether a transition is enabled.
	GuardFn = primitives.GuardFn
	// FieldFn computes one field's new value from the working snapshot.
	FieldFn = primitives.FieldFn
	// UpdateFn computes a whole-context update from the working snapshot.
	UpdateFn = primitives.UpdateFn
	// EffectFn is a deferred side effect run against the committed snapshot.
	EffectFn = primitives.EffectFn
	// TransitionConfig defines a single transition of one source state.
	TransitionConfig = primitives.TransitionConfig
	// StateConfig defines a finite-state node and its ordered transitions.
	StateConfig = primitives.StateConfig
	// MachineConfig is the fully-resolved chart definition.
	MachineConfig = primitives.MachineConfig
	// State is the (finite-state value, extended-state snapshot) pair.
	State = core.State
	// StateSnapshot is the serializable observation of a settled State.
	StateSnapshot = core.StateSnapshot
	// Machine is the microstep engine for one chart definition.
	Machine = core.Machine
	// Option configures a Machine.
	Option = core.Option
	// TransitionRecord describes one committed microstep.
	TransitionRecord = core.TransitionRecord
	// Listener observes committed microsteps.
	Listener = core.Listener
	// EffectRunner executes deferred effects; pluggable via WithEffectRunner.
	EffectRunner = core.EffectRunner
)

const (
	// MergePartial shallow-merges a whole-context assigner's result.
	MergePartial = primitives.MergePartial
	// ReplaceAll replaces the snapshot wholesale.
	ReplaceAll = primitives.ReplaceAll
	// TransientEvent keys eventless transitions in a StateConfig's On map.
	TransientEvent = primitives.TransientEvent
	// DefaultTransientLimit caps chained eventless microsteps per macrostep.
	DefaultTransientLimit = core.DefaultTransientLimit
)

// Eventless is the sentinel "no event" used for initialization and
// transient resolution.
var Eventless = primitives.Eventless

// ErrTransientCycle reports an eventless chain exceeding the configured cap.
var ErrTransientCycle = core.ErrTransientCycle

// NewMachine validates a chart definition and creates its engine.
func NewMachine(config MachineConfig, opts ...Option) (*Machine, error) {
	return core.NewMachine(config, opts...)
}

// NewEvent creates an immutable Event.
func NewEvent(eventType string, data any) Event {
	return primitives.NewEvent(eventType, data)
}

// NewContext creates an extended-state snapshot from initial data.
func NewContext(data map[string]any) Context {
	return primitives.NewContext(data)
}

// Assign builds a property assigner action.
func Assign(fields map[string]any) ActionSpec {
	return primitives.Assign(fields)
}

// AssignField builds a property assigner updating a single field.
func AssignField(key string, val any) ActionSpec {
	return primitives.AssignField(key, val)
}

// AssignFunc builds a whole-context assigner with an explicit merge policy.
func AssignFunc(fn UpdateFn, policy MergePolicy) ActionSpec {
	return primitives.AssignFunc(fn, policy)
}

// Do builds a deferred effect action.
func Do(fn EffectFn) ActionSpec {
	return primitives.Do(fn)
}

// WithEffectRunner configures a custom EffectRunner.
func WithEffectRunner(r EffectRunner) Option {
	return core.WithEffectRunner(r)
}

// WithLogger configures the engine's structured logger.
func WithLogger(l *slog.Logger) Option {
	return core.WithLogger(l)
}

// WithTransientLimit overrides the eventless-microstep cap per macrostep.
func WithTransientLimit(n int) Option {
	return core.WithTransientLimit(n)
}

// WithListener registers a callback observing every committed microstep.
func WithListener(fn Listener) Option {
	return core.WithListener(fn)
}
