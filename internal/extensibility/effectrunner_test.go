package extensibility

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstep/internal/core"
	"github.com/comalice/microstep/internal/primitives"
)

func TestLoggingEffectRunnerDelegatesAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var ran bool
	spec := primitives.Do(func(ctx primitives.Context, event primitives.Event) error {
		ran = true
		return nil
	})

	runner := NewLoggingEffectRunner(core.DefaultEffectRunner{}, logger)
	err := runner.Run(primitives.NewContext(nil), spec, primitives.NewEvent("GO", nil))

	require.NoError(t, err)
	assert.True(t, ran, "inner effect did not run")
	assert.Contains(t, buf.String(), "executing effect")
	assert.Contains(t, buf.String(), "effect completed")
}

func TestLoggingEffectRunnerPropagatesErrors(t *testing.T) {
	wantErr := errors.New("boom")
	spec := primitives.Do(func(ctx primitives.Context, event primitives.Event) error {
		return wantErr
	})

	runner := NewLoggingEffectRunner(core.DefaultEffectRunner{}, nil)
	err := runner.Run(primitives.NewContext(nil), spec, primitives.Eventless)
	assert.ErrorIs(t, err, wantErr)
}
