package extensibility

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/comalice/microstep/internal/primitives"
)

// CompileGuard parses a simple expression like "temp > 30", "amount >= 10",
// or "loggedIn == true" into a GuardFn. Parsing happens once, at
// construction time; the returned predicate does no string work per step.
//
// Supported operators: ==, !=, >, <, >=, <=. The left side is a context key;
// the right side is a number, true, false, nil, or a bare string.
// Comparisons against a missing key evaluate to false.
func CompileGuard(expr string) (primitives.GuardFn, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return nil, fmt.Errorf("guard expression %q: want \"key op value\"", expr)
	}
	key, op, valStr := parts[0], parts[1], parts[2]

	switch op {
	case "==", "!=":
		eq, err := compileEquality(key, valStr)
		if err != nil {
			return nil, fmt.Errorf("guard expression %q: %w", expr, err)
		}
		if op == "!=" {
			inner := eq
			return func(ctx primitives.Context, event primitives.Event) (bool, error) {
				ok, err := inner(ctx, event)
				return !ok, err
			}, nil
		}
		return eq, nil
	case ">", "<", ">=", "<=":
		want, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, fmt.Errorf("guard expression %q: non-numeric comparison value", expr)
		}
		return func(ctx primitives.Context, event primitives.Event) (bool, error) {
			v, ok := ctx.Get(key)
			if !ok {
				return false, nil
			}
			f, ok := toFloat(v)
			if !ok {
				return false, nil
			}
			switch op {
			case ">":
				return f > want, nil
			case "<":
				return f < want, nil
			case ">=":
				return f >= want, nil
			default:
				return f <= want, nil
			}
		}, nil
	default:
		return nil, fmt.Errorf("guard expression %q: unsupported operator %q", expr, op)
	}
}

// compileEquality builds the == predicate for a literal right-hand side.
func compileEquality(key, valStr string) (primitives.GuardFn, error) {
	switch valStr {
	case "true", "false":
		want := valStr == "true"
		return func(ctx primitives.Context, event primitives.Event) (bool, error) {
			v, ok := ctx.Get(key)
			return ok && v == want, nil
		}, nil
	case "nil":
		return func(ctx primitives.Context, event primitives.Event) (bool, error) {
			v, ok := ctx.Get(key)
			return ok && v == nil, nil
		}, nil
	}

	if want, err := strconv.ParseFloat(valStr, 64); err == nil {
		return func(ctx primitives.Context, event primitives.Event) (bool, error) {
			v, ok := ctx.Get(key)
			if !ok {
				return false, nil
			}
			f, ok := toFloat(v)
			return ok && f == want, nil
		}, nil
	}

	// Bare string literal.
	return func(ctx primitives.Context, event primitives.Event) (bool, error) {
		v, ok := ctx.Get(key)
		if !ok {
			return false, nil
		}
		s, ok := v.(string)
		return ok && s == valStr, nil
	}, nil
}

// toFloat widens the numeric types a context commonly carries, including
// the float64 that JSON/YAML decoding produces.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	default:
		return 0, false
	}
}
