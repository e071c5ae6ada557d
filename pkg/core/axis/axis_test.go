package axis

import (
	"testing"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/tickmark"
)

func date(d int) time.Time {
	return time.Date(2020, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestLineEndPoint(t *testing.T) {
	tests := []struct {
		name string
		o    orient.Orientation
		want geom.Point
	}{
		{"vertical", orient.Vertical, geom.Point{X: 0, Y: 500}},
		{"horizontal", orient.Horizontal, geom.Point{X: 500, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band := scale.NewBand([]string{"A"}, [2]float64{0, 500}, 0, 0)
			l := ScaleLine(geom.Origin, scale.Orient[string](band, tt.o))
			if l.Start != geom.Origin {
				t.Errorf("start = %v", l.Start)
			}
			if l.End != tt.want {
				t.Errorf("end = %v, want %v", l.End, tt.want)
			}
		})
	}
}

func TestLineKeepsOtherCoordinate(t *testing.T) {
	l := Line(geom.Point{X: 50, Y: 40}, orient.Vertical, 550)
	if l.End != (geom.Point{X: 50, Y: 550}) {
		t.Errorf("end = %v", l.End)
	}
}

func TestGridLine(t *testing.T) {
	// Tick at 100 on a vertical axis; grid line runs horizontally across
	// the other axis' extent.
	g := GridLine(geom.Point{X: 50, Y: 50}, orient.Vertical, 100, 750, 50)
	if g.Start != (geom.Point{X: 50, Y: 100}) {
		t.Errorf("start = %v", g.Start)
	}
	if g.End != (geom.Point{X: 750, Y: 100}) {
		t.Errorf("end = %v", g.End)
	}
}

func TestGridLines(t *testing.T) {
	band := scale.NewBand([]string{"A", "B", "C"}, [2]float64{0, 300}, 0, 0)
	lines := GridLines([]string{"A", "B", "C"}, scale.Orient[string](band, orient.Horizontal), geom.Origin, 200, 0)

	if len(lines) != 3 {
		t.Fatalf("len = %d", len(lines))
	}
	for i, l := range lines {
		x := float64(i) * 100
		if l.Start != (geom.Point{X: x}) || l.End != (geom.Point{X: x, Y: 200}) {
			t.Errorf("line %d = %v", i, l)
		}
	}
}

func newSelectors() *Selectors {
	st := state.NewSelectors()
	sc := scale.NewSelectors(st)
	return NewSelectors(st, sc, tickmark.NewSelectors(st, sc))
}

func newState(opts *options.Options) *state.State {
	s := state.Reduce(state.New(opts), state.Resized{Width: 800, Height: 600})
	return state.Reduce(s, state.ActivitiesLoaded{Activities: []state.Activity{
		{ID: "1", Series: "A", Start: date(1), Finish: date(3)},
		{ID: "2", Series: "B", Start: date(2), Finish: date(11)},
		{ID: "3", Series: "A", Start: date(4), Finish: date(5)},
		{ID: "4", Series: "C", Start: date(4), Finish: date(6)},
	}})
}

func TestAxesAssembled(t *testing.T) {
	sel := newSelectors()
	s := newState(nil)

	ta := sel.Axes.Time(s)
	if ta.Orientation != orient.Vertical {
		t.Errorf("time orientation = %v", ta.Orientation)
	}
	if ta.Line == nil || ta.Line.Start != (geom.Point{X: 50, Y: 50}) || ta.Line.End != (geom.Point{X: 50, Y: 550}) {
		t.Errorf("time line = %v", ta.Line)
	}
	if len(ta.GridLines) != len(ta.TickMarks) || len(ta.GridLines) == 0 {
		t.Errorf("grid lines = %d, ticks = %d", len(ta.GridLines), len(ta.TickMarks))
	}
	// Time grid lines span the resource range less the left margin.
	g := ta.GridLines[0]
	if g.Start.X != 50 || g.End.X != 50+750-50 {
		t.Errorf("time grid line = %v", g)
	}

	ra := sel.Axes.Resources(s)
	if ra.Orientation != orient.Horizontal {
		t.Errorf("resource orientation = %v", ra.Orientation)
	}
	if len(ra.GridLines) != 3 || len(ra.TickMarks) != 3 {
		t.Errorf("resource grid lines = %d, ticks = %d", len(ra.GridLines), len(ra.TickMarks))
	}
	if ra.Line == nil || ra.Line.End != (geom.Point{X: 750, Y: 50}) {
		t.Errorf("resource line = %v", ra.Line)
	}
}

func TestGridLineVisibility(t *testing.T) {
	hide := false
	opts, err := options.New(options.Overrides{
		TimeAxis:     &options.AxisOverrides{ShowGridLines: &hide},
		ResourceAxis: &options.AxisOverrides{ShowAxisLine: &hide},
	})
	if err != nil {
		t.Fatal(err)
	}

	sel := newSelectors()
	s := newState(opts)

	ta := sel.Axes.Time(s)
	if len(ta.GridLines) != 0 || ta.ShowGridLines {
		t.Errorf("time grid lines should be hidden, got %d", len(ta.GridLines))
	}
	if len(ta.TickMarks) == 0 {
		t.Error("tick marks must not depend on grid visibility")
	}
	if ta.Line == nil {
		t.Error("time line should be shown")
	}

	ra := sel.Axes.Resources(s)
	if ra.Line != nil {
		t.Error("resource line should be hidden")
	}
	if len(ra.GridLines) != 3 {
		t.Errorf("resource grid lines = %d", len(ra.GridLines))
	}
}

func TestAxisIdempotent(t *testing.T) {
	sel := newSelectors()
	s := newState(nil)

	a := sel.Axes.Time(s)
	b := sel.Axes.Time(s)
	if a.Line != b.Line || &a.GridLines[0] != &b.GridLines[0] || &a.TickMarks[0] != &b.TickMarks[0] {
		t.Error("axis not reference-stable on unchanged snapshot")
	}
}

func TestAxisFlip(t *testing.T) {
	sel := newSelectors()
	s := newState(nil)
	flipped := state.Reduce(s, state.OrientationFlipped{})

	if got := sel.Axes.Time(flipped).Orientation; got != orient.Horizontal {
		t.Errorf("flipped time orientation = %v", got)
	}
	if got := sel.Axes.Resources(flipped).Orientation; got != orient.Vertical {
		t.Errorf("flipped resource orientation = %v", got)
	}
	l := sel.Axes.Time(flipped).Line
	if l == nil || l.End != (geom.Point{X: 750, Y: 50}) {
		t.Errorf("flipped time line = %v", l)
	}
}

func TestDegenerateView(t *testing.T) {
	sel := newSelectors()
	views := []state.Resized{{}, {Width: 0, Height: 600}, {Width: 800, Height: 40}}

	for _, v := range views {
		s := state.Reduce(newState(nil), v)
		for _, a := range []orient.AxisType{orient.Time, orient.Resources} {
			ax := sel.Axes.Get(a)(s)
			if ax.Line != nil || len(ax.GridLines) != 0 || len(ax.TickMarks) != 0 {
				t.Errorf("%v axis on %vx%v view = %+v", a, v.Width, v.Height, ax)
			}
		}
	}
}
