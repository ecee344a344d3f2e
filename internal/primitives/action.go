// Package primitives defines the foundational data structures for the microstep engine.
// ActionSpec is the tagged action variant attached to transitions: an action is
// classified as an assignment (context update) or an effect (deferred side effect)
// at construction time, so the engine's partitioning during a microstep is a
// simple, total classification with no runtime inspection of arbitrary callables.
package primitives

import (
	"errors"
	"fmt"
)

// GuardFn is a pure predicate gating whether a transition is enabled.
// It must not mutate ctx. A nil guard means "always enabled".
type GuardFn func(ctx Context, event Event) (bool, error)

// FieldFn computes one field's new value from the current working snapshot.
type FieldFn func(ctx Context, event Event) (any, error)

// UpdateFn computes a whole-context update from the current working snapshot.
// Whether its result merges into or replaces the snapshot is decided by the
// assigner's explicit MergePolicy, never inferred from the returned shape.
type UpdateFn func(ctx Context, event Event) (map[string]any, error)

// EffectFn is a side-effecting action. It runs only after the microstep's
// context is committed and always observes the final committed snapshot.
type EffectFn func(ctx Context, event Event) error

// ActionKind classifies an ActionSpec.
type ActionKind string

const (
	ActionAssign ActionKind = "assign"
	ActionEffect ActionKind = "effect"
)

// MergePolicy declares how a whole-context assigner's result is applied.
type MergePolicy string

const (
	// MergePartial shallow-merges the returned fields into the working snapshot.
	MergePartial MergePolicy = "merge"
	// ReplaceAll replaces the working snapshot wholesale with the returned data.
	ReplaceAll MergePolicy = "replace"
)

// ActionSpec is the tagged union of assignment and effect actions.
// Exactly one of the payload groups is populated, per Kind:
//   - ActionAssign with Fields: a property assigner; each field is a static
//     value or a FieldFn, all computed against the working snapshot and merged
//     as one shallow update.
//   - ActionAssign with Update: a whole-context assigner applied per Policy.
//   - ActionEffect with Effect: a deferred side effect.
type ActionSpec struct {
	Kind   ActionKind
	Fields map[string]any
	Update UpdateFn
	Policy MergePolicy
	Effect EffectFn
}

// Assign builds a property assigner. Field values may be static or FieldFn.
func Assign(fields map[string]any) ActionSpec {
	return ActionSpec{
		Kind:   ActionAssign,
		Fields: fields,
	}
}

// AssignField builds a property assigner updating a single field.
func AssignField(key string, val any) ActionSpec {
	return Assign(map[string]any{key: val})
}

// AssignFunc builds a whole-context assigner with an explicit merge policy.
func AssignFunc(fn UpdateFn, policy MergePolicy) ActionSpec {
	return ActionSpec{
		Kind:   ActionAssign,
		Update: fn,
		Policy: policy,
	}
}

// Do builds a deferred effect action.
func Do(fn EffectFn) ActionSpec {
	return ActionSpec{
		Kind:   ActionEffect,
		Effect: fn,
	}
}

// Validate checks that the spec is a well-formed member of the union.
func (a ActionSpec) Validate() error {
	switch a.Kind {
	case ActionAssign:
		if a.Fields == nil && a.Update == nil {
			return errors.New("assign action requires Fields or Update")
		}
		if a.Fields != nil && a.Update != nil {
			return errors.New("assign action cannot have both Fields and Update")
		}
		if a.Update != nil && a.Policy != MergePartial && a.Policy != ReplaceAll {
			return fmt.Errorf("whole-context assigner requires an explicit policy, got %q", a.Policy)
		}
		if a.Effect != nil {
			return errors.New("assign action cannot carry an effect")
		}
	case ActionEffect:
		if a.Effect == nil {
			return errors.New("effect action requires a callable")
		}
		if a.Fields != nil || a.Update != nil {
			return errors.New("effect action cannot carry assigners")
		}
	default:
		return fmt.Errorf("invalid action kind %q", a.Kind)
	}
	return nil
}

// PartitionActions splits specs into the assign and effect subsequences,
// preserving relative order within each.
func PartitionActions(specs []ActionSpec) (assigns, effects []ActionSpec) {
	for _, spec := range specs {
		switch spec.Kind {
		case ActionAssign:
			assigns = append(assigns, spec)
		case ActionEffect:
			effects = append(effects, spec)
		}
	}
	return assigns, effects
}
