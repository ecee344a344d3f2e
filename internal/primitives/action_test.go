package primitives

import "testing"

func TestActionSpecValidate(t *testing.T) {
	incr := FieldFn(func(ctx Context, event Event) (any, error) { return 1, nil })
	update := UpdateFn(func(ctx Context, event Event) (map[string]any, error) { return nil, nil })
	effect := EffectFn(func(ctx Context, event Event) error { return nil })

	tests := []struct {
		name    string
		spec    ActionSpec
		wantErr bool
	}{
		{"property assigner", Assign(map[string]any{"count": incr}), false},
		{"static assigner", AssignField("count", 0), false},
		{"whole-context merge", AssignFunc(update, MergePartial), false},
		{"whole-context replace", AssignFunc(update, ReplaceAll), false},
		{"effect", Do(effect), false},
		{"assign without payload", ActionSpec{Kind: ActionAssign}, true},
		{"assign with both forms", ActionSpec{Kind: ActionAssign, Fields: map[string]any{}, Update: update, Policy: MergePartial}, true},
		{"whole-context without policy", ActionSpec{Kind: ActionAssign, Update: update}, true},
		{"effect without callable", ActionSpec{Kind: ActionEffect}, true},
		{"unknown kind", ActionSpec{Kind: "other"}, true},
	}
	for _, tt := range tests {
		err := tt.spec.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestPartitionActionsPreservesRelativeOrder(t *testing.T) {
	effect := EffectFn(func(ctx Context, event Event) error { return nil })
	specs := []ActionSpec{
		Do(effect),
		AssignField("a", 1),
		Do(effect),
		AssignField("b", 2),
		AssignField("c", 3),
	}

	assigns, effects := PartitionActions(specs)

	if len(assigns) != 3 || len(effects) != 2 {
		t.Fatalf("partition sizes = %d assigns, %d effects, want 3 and 2", len(assigns), len(effects))
	}
	wantKeys := []string{"a", "b", "c"}
	for i, spec := range assigns {
		if _, ok := spec.Fields[wantKeys[i]]; !ok {
			t.Errorf("assign %d missing field %q (order not preserved)", i, wantKeys[i])
		}
	}
}
