package extensibility

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/microstep/internal/primitives"
)

// ChartDef is the serializable form of a chart definition, as authored in
// YAML or JSON. Guards, assigners, and effects appear as symbolic names;
// Resolve binds them against a Registry into a runnable MachineConfig.
type ChartDef struct {
	ID      string              `json:"id" yaml:"id"`
	Initial string              `json:"initial" yaml:"initial"`
	Context map[string]any      `json:"context,omitempty" yaml:"context,omitempty"`
	States  map[string]StateDef `json:"states" yaml:"states"`
}

// StateDef is the serializable form of one state. Transitions keyed to the
// empty event name are transient.
type StateDef struct {
	On map[string][]TransitionDef `json:"on,omitempty" yaml:"on,omitempty"`
}

// TransitionDef is the serializable form of one transition.
// Guard is either a registered guard name or a "key op value" expression.
type TransitionDef struct {
	Target  string      `json:"target,omitempty" yaml:"target,omitempty"`
	Guard   string      `json:"guard,omitempty" yaml:"guard,omitempty"`
	Actions []ActionDef `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// ActionDef is the serializable form of one action. Exactly one of the
// groups may be populated:
//   - Assign: property assigner; values are static, except strings prefixed
//     with "$" which resolve to registered field assigners ("$$" escapes a
//     literal leading dollar).
//   - Update (+ Policy "merge" or "replace"): named whole-context assigner.
//   - Do: named effect.
type ActionDef struct {
	Assign map[string]any `json:"assign,omitempty" yaml:"assign,omitempty"`
	Update string         `json:"update,omitempty" yaml:"update,omitempty"`
	Policy string         `json:"policy,omitempty" yaml:"policy,omitempty"`
	Do     string         `json:"do,omitempty" yaml:"do,omitempty"`
}

// ParseChartYAML decodes a YAML chart definition.
func ParseChartYAML(data []byte) (ChartDef, error) {
	var def ChartDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return ChartDef{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return def, nil
}

// ParseChartJSON decodes a JSON chart definition.
func ParseChartJSON(data []byte) (ChartDef, error) {
	var def ChartDef
	if err := json.Unmarshal(data, &def); err != nil {
		return ChartDef{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return def, nil
}

// Resolve binds every symbolic reference in the definition against reg and
// returns a fully-resolved MachineConfig ready for the engine. Resolution
// happens exactly once here; unresolvable names fail construction.
func (d ChartDef) Resolve(reg *Registry) (primitives.MachineConfig, error) {
	config := primitives.MachineConfig{
		ID:      d.ID,
		Initial: d.Initial,
		Context: d.Context,
		States:  make(map[string]*primitives.StateConfig, len(d.States)),
	}

	for sid, stateDef := range d.States {
		state := primitives.NewStateConfig(sid)
		for event, transitions := range stateDef.On {
			for i, transDef := range transitions {
				trans, err := transDef.resolve(reg)
				if err != nil {
					return primitives.MachineConfig{},
						fmt.Errorf("state %q, event %q, transition %d: %w", sid, event, i, err)
				}
				state.AddTransition(event, trans)
			}
		}
		config.States[sid] = state
	}

	if err := config.Validate(); err != nil {
		return primitives.MachineConfig{}, err
	}
	return config, nil
}

func (d TransitionDef) resolve(reg *Registry) (primitives.TransitionConfig, error) {
	trans := primitives.TransitionConfig{Target: d.Target}

	if d.Guard != "" {
		guard, err := resolveGuard(reg, d.Guard)
		if err != nil {
			return primitives.TransitionConfig{}, err
		}
		trans.Guard = guard
	}

	for i, actionDef := range d.Actions {
		spec, err := actionDef.resolve(reg)
		if err != nil {
			return primitives.TransitionConfig{}, fmt.Errorf("action %d: %w", i, err)
		}
		trans.Actions = append(trans.Actions, spec)
	}

	return trans, nil
}

// resolveGuard tries a registered name first, then falls back to compiling
// the string as a "key op value" expression.
func resolveGuard(reg *Registry, name string) (primitives.GuardFn, error) {
	if fn, err := reg.Guard(name); err == nil {
		return fn, nil
	}
	fn, err := CompileGuard(name)
	if err != nil {
		return nil, fmt.Errorf("guard %q is neither registered nor a valid expression: %w", name, err)
	}
	return fn, nil
}

func (d ActionDef) resolve(reg *Registry) (primitives.ActionSpec, error) {
	populated := 0
	if d.Assign != nil {
		populated++
	}
	if d.Update != "" {
		populated++
	}
	if d.Do != "" {
		populated++
	}
	if populated != 1 {
		return primitives.ActionSpec{}, fmt.Errorf("action must populate exactly one of assign/update/do")
	}

	switch {
	case d.Assign != nil:
		fields := make(map[string]any, len(d.Assign))
		for key, val := range d.Assign {
			resolved, err := resolveFieldValue(reg, val)
			if err != nil {
				return primitives.ActionSpec{}, fmt.Errorf("field %q: %w", key, err)
			}
			fields[key] = resolved
		}
		return primitives.Assign(fields), nil

	case d.Update != "":
		fn, err := reg.Update(d.Update)
		if err != nil {
			return primitives.ActionSpec{}, err
		}
		policy, err := parsePolicy(d.Policy)
		if err != nil {
			return primitives.ActionSpec{}, err
		}
		return primitives.AssignFunc(fn, policy), nil

	default:
		fn, err := reg.Effect(d.Do)
		if err != nil {
			return primitives.ActionSpec{}, err
		}
		return primitives.Do(fn), nil
	}
}

// resolveFieldValue maps "$name" strings to registered field assigners and
// passes everything else through as a static value.
func resolveFieldValue(reg *Registry, val any) (any, error) {
	s, ok := val.(string)
	if !ok || !strings.HasPrefix(s, "$") {
		return val, nil
	}
	if strings.HasPrefix(s, "$$") {
		return s[1:], nil
	}
	fn, err := reg.Field(strings.TrimPrefix(s, "$"))
	if err != nil {
		return nil, err
	}
	return fn, nil
}

func parsePolicy(s string) (primitives.MergePolicy, error) {
	switch s {
	case "merge":
		return primitives.MergePartial, nil
	case "replace":
		return primitives.ReplaceAll, nil
	default:
		return "", fmt.Errorf("update requires policy \"merge\" or \"replace\", got %q", s)
	}
}
