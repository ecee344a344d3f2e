package production

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstep/internal/core"
)

func sampleSnapshot() core.StateSnapshot {
	return core.StateSnapshot{
		MachineID: "tank",
		Value:     "full",
		Context:   map[string]any{"amount": float64(10), "label": "ok"},
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestJSONPersisterRoundTrip(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Save(ctx, sampleSnapshot()))

	got, err := p.Load(ctx, "tank")
	require.NoError(t, err)
	assert.Equal(t, "tank", got.MachineID)
	assert.Equal(t, "full", got.Value)
	assert.Equal(t, sampleSnapshot().Context, got.Context)
	assert.True(t, got.Timestamp.Equal(sampleSnapshot().Timestamp))
}

func TestYAMLPersisterRoundTrip(t *testing.T) {
	p, err := NewYAMLPersister(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, p.Save(ctx, sampleSnapshot()))

	got, err := p.Load(ctx, "tank")
	require.NoError(t, err)
	assert.Equal(t, "full", got.Value)
	assert.Equal(t, "ok", got.Context["label"])
}

func TestPersisterLoadMissing(t *testing.T) {
	p, err := NewJSONPersister(t.TempDir())
	require.NoError(t, err)

	_, err = p.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, os.ErrNotExist), "err = %v", err)
}

func TestRestoreStateFromSnapshot(t *testing.T) {
	state := core.RestoreState(sampleSnapshot())
	assert.Equal(t, "full", state.Value)
	assert.Equal(t, float64(10), state.Context.Value("amount"))
}
