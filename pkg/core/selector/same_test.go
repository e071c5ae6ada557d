package selector

import (
	"testing"
	"time"
)

type pair struct {
	A []int
	B string
}

func TestSame(t *testing.T) {
	xs := []int{1, 2}
	m := map[string]int{"a": 1}
	p := &pair{}
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	fn := func() {}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"different types", 1, int64(1), false},
		{"equal strings", "a", "a", true},
		{"nil and nil", nil, nil, true},
		{"nil and value", nil, 1, false},
		{"same slice", xs, xs, true},
		{"equal contents, different slice", xs, []int{1, 2}, false},
		{"empty slices", []int{}, []int(nil), true},
		{"resliced", xs, xs[:1], false},
		{"same map", m, m, true},
		{"different map", m, map[string]int{"a": 1}, false},
		{"same pointer", p, p, true},
		{"different pointer", p, &pair{}, false},
		{"struct sharing slice", pair{A: xs, B: "x"}, pair{A: xs, B: "x"}, true},
		{"struct with new slice", pair{A: xs}, pair{A: []int{1, 2}}, false},
		{"equal times", now, now, true},
		{"arrays", [2]float64{1, 2}, [2]float64{1, 2}, true},
		{"functions", fn, fn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
