package primitives

import "testing"

func TestContextWithDoesNotMutateReceiver(t *testing.T) {
	orig := NewContext(map[string]any{"count": 0})
	next := orig.With("count", 1)

	if got := orig.Value("count"); got != 0 {
		t.Errorf("original snapshot mutated: count = %v, want 0", got)
	}
	if got := next.Value("count"); got != 1 {
		t.Errorf("next snapshot count = %v, want 1", got)
	}
}

func TestContextMerge(t *testing.T) {
	orig := NewContext(map[string]any{"a": 1, "b": 2})
	next := orig.Merge(map[string]any{"b": 20, "c": 30})

	if !orig.Equal(NewContext(map[string]any{"a": 1, "b": 2})) {
		t.Errorf("original snapshot mutated by Merge: %v", orig)
	}
	want := NewContext(map[string]any{"a": 1, "b": 20, "c": 30})
	if !next.Equal(want) {
		t.Errorf("Merge = %v, want %v", next, want)
	}
}

func TestContextMergeEmptyReturnsSameData(t *testing.T) {
	orig := NewContext(map[string]any{"a": 1})
	next := orig.Merge(nil)
	if !next.Equal(orig) {
		t.Errorf("Merge(nil) = %v, want %v", next, orig)
	}
}

func TestContextWithout(t *testing.T) {
	orig := NewContext(map[string]any{"a": 1, "b": 2})
	next := orig.Without("a")

	if _, ok := next.Get("a"); ok {
		t.Error("Without did not remove key")
	}
	if _, ok := orig.Get("a"); !ok {
		t.Error("Without mutated the original snapshot")
	}
}

func TestNewContextCopiesInput(t *testing.T) {
	data := map[string]any{"k": "v"}
	c := NewContext(data)
	data["k"] = "changed"

	if got := c.Value("k"); got != "v" {
		t.Errorf("snapshot leaked input mutation: k = %v, want v", got)
	}
}

func TestContextSnapshotIsDefensiveCopy(t *testing.T) {
	c := NewContext(map[string]any{"k": "v"})
	snap := c.Snapshot()
	snap["k"] = "changed"

	if got := c.Value("k"); got != "v" {
		t.Errorf("Snapshot copy leaked mutation: k = %v, want v", got)
	}
}

func TestContextEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Context
		want bool
	}{
		{"both empty", Context{}, Context{}, true},
		{"nil vs empty", nil, Context{}, true},
		{"equal data", NewContext(map[string]any{"x": 1}), NewContext(map[string]any{"x": 1}), true},
		{"different value", NewContext(map[string]any{"x": 1}), NewContext(map[string]any{"x": 2}), false},
		{"different keys", NewContext(map[string]any{"x": 1}), NewContext(map[string]any{"y": 1}), false},
		{"subset", NewContext(map[string]any{"x": 1}), NewContext(map[string]any{"x": 1, "y": 2}), false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}
