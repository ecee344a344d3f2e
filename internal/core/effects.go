package core

import (
	"fmt"

	"github.com/comalice/microstep/internal/primitives"
)

// EffectRunner executes one deferred effect against the committed snapshot.
// Pluggable; wrap the default with extensibility.LoggingEffectRunner for
// per-effect logging.
type EffectRunner interface {
	Run(ctx primitives.Context, spec primitives.ActionSpec, event primitives.Event) error
}

// DefaultEffectRunner invokes the effect callable directly.
type DefaultEffectRunner struct{}

// Run executes the given effect spec.
func (DefaultEffectRunner) Run(ctx primitives.Context, spec primitives.ActionSpec, event primitives.Event) error {
	if spec.Effect == nil {
		return nil
	}
	return spec.Effect(ctx, event)
}

// runEffects executes the effect subsequence strictly in definition order,
// after the microstep's context is committed. Every effect observes the same
// final committed context, never an intermediate one.
func runEffects(runner EffectRunner, committed State, event primitives.Event, effects []primitives.ActionSpec) error {
	for i, spec := range effects {
		if err := runner.Run(committed.Context, spec, event); err != nil {
			return fmt.Errorf("effect %d (state %q): %w", i, committed.Value, err)
		}
	}
	return nil
}
