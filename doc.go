// Package microstep implements the microstep engine of a statechart
// interpreter: given a current (finite-state, extended-state) pair and an
// incoming event, it computes the next such pair.
//
// The engine enforces strict ordering and atomicity across the two update
// channels of a transition: all assign actions are batched and applied to a
// working snapshot before any effect runs, and every effect observes the same
// final committed context. After each committed microstep, eventless
// (transient) transitions are resolved automatically, bounded by a
// configurable iteration cap, so one Send call always returns a fully
// settled State.
//
// State is immutable: the engine never patches a State in place, and the
// extended-state snapshot it carries is a plain-data value suitable for
// serialization, logging, and snapshot diffing. Callers own their current
// State and replace it with each returned one:
//
//	m, _ := microstep.NewChart("counter", "active").
//		State("active").
//		OnInternal("INC", microstep.TransitionConfig{
//			Actions: []microstep.ActionSpec{
//				microstep.Assign(map[string]any{"count": increment}),
//			},
//		}).
//		Build()
//
//	state, _ := m.InitialState()
//	state, _ = m.Send(state, microstep.NewEvent("INC", nil))
//
// Processing is single-threaded, synchronous, and run-to-completion per
// macrostep. A Machine is read-only after construction and may be shared
// across goroutines as long as each caller serializes its own event stream.
package microstep
