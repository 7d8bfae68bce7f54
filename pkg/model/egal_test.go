package model

import (
	"math"
	"testing"
)

func TestEgal(t *testing.T) {
	negZero := math.Copysign(0, -1)
	ptr := &struct{ n int }{1}
	samePtr := ptr
	otherPtr := &struct{ n int }{1}
	shared := []int{1, 2}
	fn := func() {}

	type point struct {
		X, Y float64
		tag  string
	}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and value", nil, 0, false},
		{"equal strings", "John", "John", true},
		{"different strings", "John", "Jack", false},
		{"equal ints", 42, 42, true},
		{"different int types", 42, int64(42), false},
		{"NaN is egal to NaN", math.NaN(), math.NaN(), true},
		{"NaN float32", float32(math.NaN()), float32(math.NaN()), true},
		{"+0 is not egal to -0", 0.0, negZero, false},
		{"equal floats", 1.5, 1.5, true},
		{"complex NaN", complex(math.NaN(), 0), complex(math.NaN(), 0), true},
		{"same pointer", ptr, samePtr, true},
		{"different pointers to equal values", ptr, otherPtr, false},
		{"equal slices", []int{1, 2}, []int{1, 2}, true},
		{"same slice", shared, shared, true},
		{"different slices", []int{1, 2}, []int{2, 1}, false},
		{"nil and empty slice", []int(nil), []int{}, true},
		{"slices with NaN", []float64{math.NaN()}, []float64{math.NaN()}, true},
		{"equal maps", map[string]any{"a": 1}, map[string]any{"a": 1}, true},
		{"maps with different values", map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{"maps with different keys", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"equal structs", point{1, 2, "x"}, point{1, 2, "x"}, true},
		{"structs differing in unexported field", point{1, 2, "x"}, point{1, 2, "y"}, false},
		{"equal arrays", [2]string{"a", "b"}, [2]string{"a", "b"}, true},
		{"non-nil funcs", fn, fn, false},
		{"nil funcs", (func())(nil), (func())(nil), true},
		{"undefined", Undefined, Undefined, true},
		{"undefined and nil", Undefined, nil, false},
		{"nested interface", []any{1, "a"}, []any{1, "a"}, true},
		{"nested interface types differ", []any{1}, []any{int8(1)}, false},
		{"nil interface element", []any{nil}, []any{nil}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Egal(tt.a, tt.b); got != tt.want {
				t.Errorf("Egal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEgal_Cycles(t *testing.T) {
	selfMap := func(n int) map[string]any {
		m := map[string]any{"n": n}
		m["self"] = m
		return m
	}
	selfSlice := func(n int) []any {
		s := make([]any, 2)
		s[0] = n
		s[1] = s
		return s
	}

	if !Egal(selfMap(1), selfMap(1)) {
		t.Error("distinct self-referencing maps with equal content should be egal")
	}
	if Egal(selfMap(1), selfMap(2)) {
		t.Error("self-referencing maps with different content should not be egal")
	}
	if !Egal(selfSlice(1), selfSlice(1)) {
		t.Error("distinct self-referencing slices with equal content should be egal")
	}
	if Egal(selfSlice(1), selfSlice(2)) {
		t.Error("self-referencing slices with different content should not be egal")
	}
}
