package extensibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstep/internal/primitives"
)

func TestCompileGuardComparisons(t *testing.T) {
	ctx := primitives.NewContext(map[string]any{
		"amount":   10,
		"temp":     30.5,
		"loggedIn": true,
		"name":     "alice",
	})

	tests := []struct {
		expr string
		want bool
	}{
		{"amount >= 10", true},
		{"amount > 10", false},
		{"amount <= 10", true},
		{"amount < 10", false},
		{"amount == 10", true},
		{"amount != 10", false},
		{"temp > 30", true},
		{"loggedIn == true", true},
		{"loggedIn == false", false},
		{"name == alice", true},
		{"name != bob", true},
		{"missing == 1", false},
		{"missing > 1", false},
		{"missing != 1", true},
	}
	for _, tt := range tests {
		guard, err := CompileGuard(tt.expr)
		require.NoError(t, err, "compile %q", tt.expr)

		got, err := guard(ctx, primitives.Eventless)
		require.NoError(t, err, "eval %q", tt.expr)
		assert.Equal(t, tt.want, got, "eval %q", tt.expr)
	}
}

func TestCompileGuardRejectsMalformedExpressions(t *testing.T) {
	for _, expr := range []string{
		"",
		"amount",
		"amount >=",
		"amount >= 10 extra",
		"amount ~ 10",
		"amount > ten",
	} {
		_, err := CompileGuard(expr)
		assert.Error(t, err, "expression %q", expr)
	}
}

func TestCompiledGuardIsPure(t *testing.T) {
	guard, err := CompileGuard("n > 5")
	require.NoError(t, err)

	ctx := primitives.NewContext(map[string]any{"n": 7})
	_, err = guard(ctx, primitives.Eventless)
	require.NoError(t, err)

	assert.True(t, ctx.Equal(primitives.NewContext(map[string]any{"n": 7})), "guard mutated the context")
}
