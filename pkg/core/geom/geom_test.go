package geom

import (
	"testing"

	"github.com/matzehuels/rxtimeline/pkg/core/orient"
)

func TestAlong(t *testing.T) {
	p := Point{X: 3, Y: 4}
	tests := []struct {
		name string
		o    orient.Orientation
		want Point
	}{
		{"vertical replaces y", orient.Vertical, Point{X: 3, Y: 10}},
		{"horizontal replaces x", orient.Horizontal, Point{X: 10, Y: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Along(tt.o, 10); got != tt.want {
				t.Errorf("Along = %+v, want %+v", got, tt.want)
			}
			if got := p.Along(tt.o, 10).Coord(tt.o); got != 10 {
				t.Errorf("Coord = %v, want 10", got)
			}
		})
	}
}

func TestNewOrientedLine(t *testing.T) {
	tests := []struct {
		name   string
		origin Point
		length float64
		o      orient.Orientation
		want   Line
	}{
		{"vertical", Point{X: 1, Y: 2}, 5, orient.Vertical, Line{Point{1, 2}, Point{1, 7}}},
		{"horizontal", Point{X: 1, Y: 2}, 5, orient.Horizontal, Line{Point{1, 2}, Point{6, 2}}},
		{"negative length", Origin, -3, orient.Horizontal, Line{Origin, Point{-3, 0}}},
		{"zero length", Origin, 0, orient.Vertical, Line{Origin, Origin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewOrientedLine(tt.origin, tt.length, tt.o)
			if got != tt.want {
				t.Errorf("NewOrientedLine = %+v, want %+v", got, tt.want)
			}
			if abs(tt.length) != got.Length() {
				t.Errorf("Length = %v, want %v", got.Length(), abs(tt.length))
			}
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		x, y float64
		want string
	}{
		{10, 0, "translate(10,0)"},
		{1.5, -2.25, "translate(1.5,-2.25)"},
		{-0.0, 0, "translate(0,0)"},
	}
	for _, tt := range tests {
		if got := Translate(tt.x, tt.y); got != tt.want {
			t.Errorf("Translate(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if got := r.Max(); got != (Point{40, 60}) {
		t.Errorf("Max = %+v", got)
	}
	if got := r.Center(); got != (Point{25, 40}) {
		t.Errorf("Center = %+v", got)
	}
	if !r.Contains(Point{10, 60}) || r.Contains(Point{9, 30}) {
		t.Error("Contains gave wrong answer")
	}
	if got := r.Translate(Point{1, 1}).Transform(); got != "translate(11,21)" {
		t.Errorf("Transform = %q", got)
	}
}
