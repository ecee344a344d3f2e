package microstep

import (
	"github.com/comalice/microstep/internal/primitives"
)

// ChartBuilder provides a fluent API for assembling a chart definition.
// States referenced as transition targets are auto-created, so simple charts
// need only name the states that carry transitions.
type ChartBuilder struct {
	config primitives.MachineConfig
}

// StateBuilder provides fluent methods for configuring individual states.
type StateBuilder struct {
	b     *ChartBuilder
	state *primitives.StateConfig
}

// NewChart creates a builder for a chart with the given ID and initial state.
func NewChart(id, initial string) *ChartBuilder {
	b := &ChartBuilder{
		config: primitives.MachineConfig{
			ID:      id,
			Initial: initial,
			States:  make(map[string]*primitives.StateConfig),
		},
	}
	b.ensure(initial)
	return b
}

// WithContext sets the chart's initial extended-state data.
func (b *ChartBuilder) WithContext(data map[string]any) *ChartBuilder {
	b.config.Context = data
	return b
}

// State creates or retrieves a state by ID.
func (b *ChartBuilder) State(id string) *StateBuilder {
	return &StateBuilder{b: b, state: b.ensure(id)}
}

// Config returns the assembled chart definition.
func (b *ChartBuilder) Config() MachineConfig {
	return b.config
}

// Build validates the chart definition and constructs the Machine.
func (b *ChartBuilder) Build(opts ...Option) (*Machine, error) {
	return NewMachine(b.config, opts...)
}

// ensure returns the state with the given ID, creating it if needed.
func (b *ChartBuilder) ensure(id string) *primitives.StateConfig {
	if state, ok := b.config.States[id]; ok {
		return state
	}
	state := primitives.NewStateConfig(id)
	b.config.States[id] = state
	return state
}

// On adds a transition from this state to target when event occurs.
// Optionally override with a full TransitionConfig via the third arg:
// .On("evt", "target") or .On("evt", "target", TransitionConfig{Guard: fn}).
func (sb *StateBuilder) On(event, target string, transOpts ...TransitionConfig) *StateBuilder {
	sb.b.ensure(target)
	sb.state.Transition(event, target, transOpts...)
	return sb
}

// OnInternal adds an internal transition: the state is kept but the
// transition's actions still run.
func (sb *StateBuilder) OnInternal(event string, transOpts ...TransitionConfig) *StateBuilder {
	trans := TransitionConfig{}
	if len(transOpts) > 0 {
		trans = transOpts[0]
		trans.Target = ""
	}
	sb.state.AddTransition(event, trans)
	return sb
}

// Always adds an eventless (transient) transition to target, evaluated
// automatically after each committed microstep.
func (sb *StateBuilder) Always(target string, transOpts ...TransitionConfig) *StateBuilder {
	sb.b.ensure(target)
	sb.state.Always(target, transOpts...)
	return sb
}

// State hops to another state builder on the same chart.
func (sb *StateBuilder) State(id string) *StateBuilder {
	return sb.b.State(id)
}

// WithContext sets the chart's initial extended-state data.
func (sb *StateBuilder) WithContext(data map[string]any) *StateBuilder {
	sb.b.WithContext(data)
	return sb
}

// Config returns the assembled chart definition.
func (sb *StateBuilder) Config() MachineConfig {
	return sb.b.Config()
}

// Build validates the chart definition and constructs the Machine.
func (sb *StateBuilder) Build(opts ...Option) (*Machine, error) {
	return sb.b.Build(opts...)
}
