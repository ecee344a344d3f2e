// Package extensibility provides the construction-time collaborators around
// the engine core: the name-to-callable registry, expression guards, and
// serializable chart definitions. All symbolic references are resolved to
// concrete callables once, when a definition is resolved into a
// primitives.MachineConfig; the engine never performs name-based dispatch
// at step time.
package extensibility

import (
	"fmt"
	"sync"

	"github.com/comalice/microstep/internal/primitives"
)

// Registry maps symbolic names to guard, assigner, and effect callables.
// Thread-safe for concurrent registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	guards  map[string]primitives.GuardFn
	fields  map[string]primitives.FieldFn
	updates map[string]primitives.UpdateFn
	effects map[string]primitives.EffectFn
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		guards:  make(map[string]primitives.GuardFn),
		fields:  make(map[string]primitives.FieldFn),
		updates: make(map[string]primitives.UpdateFn),
		effects: make(map[string]primitives.EffectFn),
	}
}

// RegisterGuard registers a named guard predicate.
func (r *Registry) RegisterGuard(name string, fn primitives.GuardFn) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards[name] = fn
	return r
}

// RegisterField registers a named per-field assigner function.
func (r *Registry) RegisterField(name string, fn primitives.FieldFn) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[name] = fn
	return r
}

// RegisterUpdate registers a named whole-context assigner function.
func (r *Registry) RegisterUpdate(name string, fn primitives.UpdateFn) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates[name] = fn
	return r
}

// RegisterEffect registers a named effect callable.
func (r *Registry) RegisterEffect(name string, fn primitives.EffectFn) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[name] = fn
	return r
}

// Guard resolves a named guard. Unregistered names fail closed with an error.
func (r *Registry) Guard(name string) (primitives.GuardFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.guards[name]
	if !ok {
		return nil, fmt.Errorf("guard %q not registered", name)
	}
	return fn, nil
}

// Field resolves a named per-field assigner.
func (r *Registry) Field(name string) (primitives.FieldFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fields[name]
	if !ok {
		return nil, fmt.Errorf("field assigner %q not registered", name)
	}
	return fn, nil
}

// Update resolves a named whole-context assigner.
func (r *Registry) Update(name string) (primitives.UpdateFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.updates[name]
	if !ok {
		return nil, fmt.Errorf("update assigner %q not registered", name)
	}
	return fn, nil
}

// Effect resolves a named effect.
func (r *Registry) Effect(name string) (primitives.EffectFn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("effect %q not registered", name)
	}
	return fn, nil
}
