// Package core provides the runtime core tier of the microstep engine.
// Options for configuring Machine instances.
package core

import "log/slog"

// WithEffectRunner configures the Machine with a custom EffectRunner.
func WithEffectRunner(r EffectRunner) Option {
	return func(m *Machine) {
		m.effects = r
	}
}

// WithLogger configures the Machine's structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithTransientLimit overrides the eventless-microstep cap per macrostep.
// Non-positive values are ignored.
func WithTransientLimit(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.transientLimit = n
		}
	}
}

// WithListener registers a callback observing every committed microstep.
func WithListener(fn Listener) Option {
	return func(m *Machine) {
		m.listener = fn
	}
}
