package extensibility

import (
	"log/slog"
	"time"

	"github.com/comalice/microstep/internal/core"
	"github.com/comalice/microstep/internal/primitives"
)

// LoggingEffectRunner wraps an EffectRunner and adds structured logging
// around execution.
type LoggingEffectRunner struct {
	inner  core.EffectRunner
	logger *slog.Logger
}

// NewLoggingEffectRunner creates a LoggingEffectRunner wrapping the given
// inner runner. A nil logger falls back to slog.Default().
func NewLoggingEffectRunner(inner core.EffectRunner, logger *slog.Logger) *LoggingEffectRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEffectRunner{inner: inner, logger: logger}
}

// Run logs before and after delegating to the inner runner.
func (r *LoggingEffectRunner) Run(ctx primitives.Context, spec primitives.ActionSpec, event primitives.Event) error {
	r.logger.Debug("executing effect", "event", event.Type)
	start := time.Now()
	err := r.inner.Run(ctx, spec, event)
	r.logger.Debug("effect completed", "event", event.Type, "duration", time.Since(start), "err", err)
	return err
}
