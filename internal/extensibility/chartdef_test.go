package extensibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/microstep/internal/core"
	"github.com/comalice/microstep/internal/primitives"
)

const tankChartYAML = `
id: tank
initial: filling
context:
  amount: 0
states:
  filling:
    on:
      FILL:
        - actions:
            - assign:
                amount: $addTen
      "":
        - target: full
          guard: amount >= 10
  full: {}
`

func tankRegistry() *Registry {
	return NewRegistry().
		RegisterField("addTen", func(ctx primitives.Context, event primitives.Event) (any, error) {
			return int(asInt(ctx.Value("amount")) + 10), nil
		})
}

// asInt handles the int-or-float ambiguity of decoded YAML numbers.
func asInt(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func TestParseAndResolveYAMLChart(t *testing.T) {
	def, err := ParseChartYAML([]byte(tankChartYAML))
	require.NoError(t, err)
	assert.Equal(t, "tank", def.ID)
	assert.Equal(t, "filling", def.Initial)

	config, err := def.Resolve(tankRegistry())
	require.NoError(t, err)

	m, err := core.NewMachine(config)
	require.NoError(t, err)

	state, err := m.InitialState()
	require.NoError(t, err)
	assert.Equal(t, "filling", state.Value)

	next, err := m.Send(state, primitives.NewEvent("FILL", nil))
	require.NoError(t, err)
	assert.Equal(t, "full", next.Value, "transient hop after guard enables")
	assert.EqualValues(t, 10, asInt(next.Context.Value("amount")))
}

func TestResolveFailsClosedOnUnknownNames(t *testing.T) {
	def := ChartDef{
		ID:      "bad",
		Initial: "a",
		States: map[string]StateDef{
			"a": {On: map[string][]TransitionDef{
				"GO": {{Target: "a", Actions: []ActionDef{{Do: "unregistered"}}}},
			}},
		},
	}

	_, err := def.Resolve(NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered")
}

func TestResolveRejectsAmbiguousActions(t *testing.T) {
	def := ChartDef{
		ID:      "bad",
		Initial: "a",
		States: map[string]StateDef{
			"a": {On: map[string][]TransitionDef{
				"GO": {{Target: "a", Actions: []ActionDef{{
					Assign: map[string]any{"x": 1},
					Do:     "alsoThis",
				}}}},
			}},
		},
	}

	_, err := def.Resolve(NewRegistry())
	assert.Error(t, err)
}

func TestResolveUpdateRequiresExplicitPolicy(t *testing.T) {
	reg := NewRegistry().RegisterUpdate("reset", func(ctx primitives.Context, event primitives.Event) (map[string]any, error) {
		return map[string]any{}, nil
	})
	def := ChartDef{
		ID:      "policy",
		Initial: "a",
		States: map[string]StateDef{
			"a": {On: map[string][]TransitionDef{
				"GO": {{Target: "a", Actions: []ActionDef{{Update: "reset"}}}},
			}},
		},
	}

	_, err := def.Resolve(reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policy")
}

func TestResolveDollarEscape(t *testing.T) {
	def := ChartDef{
		ID:      "escape",
		Initial: "a",
		States: map[string]StateDef{
			"a": {On: map[string][]TransitionDef{
				"GO": {{Actions: []ActionDef{{
					Assign: map[string]any{"price": "$$9.99"},
				}}}},
			}},
		},
	}

	config, err := def.Resolve(NewRegistry())
	require.NoError(t, err)

	m, err := core.NewMachine(config)
	require.NoError(t, err)

	state, err := m.InitialState()
	require.NoError(t, err)

	next, err := m.Send(state, primitives.NewEvent("GO", nil))
	require.NoError(t, err)
	assert.Equal(t, "$9.99", next.Context.Value("price"))
}

func TestRegisteredGuardWinsOverExpression(t *testing.T) {
	reg := NewRegistry().RegisterGuard("amount >= 10", func(ctx primitives.Context, event primitives.Event) (bool, error) {
		return false, nil
	})

	guard, err := resolveGuard(reg, "amount >= 10")
	require.NoError(t, err)

	ok, err := guard(primitives.NewContext(map[string]any{"amount": 50}), primitives.Eventless)
	require.NoError(t, err)
	assert.False(t, ok, "registered guard should take precedence over expression compilation")
}
