package core

import (
	"fmt"

	"github.com/comalice/microstep/internal/primitives"
)

// ApplyBatch sequentially applies assign specs to a working snapshot within
// one microstep and returns the committed context. The input snapshot is
// never mutated.
//
// Each property assigner computes all of its fields against the current
// working snapshot (the cumulative result of prior specs in the same batch,
// not the pre-batch context) and merges them as one shallow update. Each
// whole-context assigner is invoked against the working snapshot and applied
// per its explicit policy: MergePartial shallow-merges the returned data,
// ReplaceAll swaps the snapshot wholesale.
//
// Any assigner error abandons the batch; nothing partial is returned.
func ApplyBatch(working primitives.Context, event primitives.Event, assigns []primitives.ActionSpec) (primitives.Context, error) {
	for i, spec := range assigns {
		switch {
		case spec.Fields != nil:
			computed := make(map[string]any, len(spec.Fields))
			for key, field := range spec.Fields {
				val, err := resolveField(field, working, event)
				if err != nil {
					return nil, fmt.Errorf("assign %d, field %q: %w", i, key, err)
				}
				computed[key] = val
			}
			working = working.Merge(computed)

		case spec.Update != nil:
			data, err := spec.Update(working, event)
			if err != nil {
				return nil, fmt.Errorf("assign %d: %w", i, err)
			}
			if spec.Policy == primitives.ReplaceAll {
				working = primitives.NewContext(data)
			} else {
				working = working.Merge(data)
			}
		}
	}
	return working, nil
}

// resolveField evaluates one field of a property assigner: a FieldFn is
// invoked against the working snapshot, anything else is a static value.
func resolveField(field any, working primitives.Context, event primitives.Event) (any, error) {
	switch fn := field.(type) {
	case primitives.FieldFn:
		return fn(working, event)
	case func(primitives.Context, primitives.Event) (any, error):
		return fn(working, event)
	default:
		return field, nil
	}
}
