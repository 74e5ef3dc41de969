package util

import (
	"slices"
	"testing"
)

func TestKeys(t *testing.T) {
	keys := Keys(map[string]int{"a": 1, "b": 2, "c": 3})
	slices.Sort(keys)
	if !slices.Equal(keys, []string{"a", "b", "c"}) {
		t.Errorf("unexpected keys %v", keys)
	}
	if got := Keys[string, int](nil); len(got) != 0 {
		t.Errorf("expected no keys for nil map, got %v", got)
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first set", []string{"a", "b"}, "a"},
		{"skip empty", []string{"", "b"}, "b"},
		{"all empty", []string{"", ""}, ""},
		{"none", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coalesce(tt.values...); got != tt.want {
				t.Errorf("Coalesce(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
	if got := Coalesce(0, 0, 7); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}
