package scale

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBandNoPadding(t *testing.T) {
	b := NewBand([]string{"A", "B", "C", "D"}, [2]float64{0, 400}, 0, 0)

	if b.Step() != 100 || b.Bandwidth() != 100 {
		t.Fatalf("step/bandwidth = %v/%v, want 100/100", b.Step(), b.Bandwidth())
	}
	for i, k := range []string{"A", "B", "C", "D"} {
		if got := b.Position(k); got != float64(i)*100 {
			t.Errorf("Position(%q) = %v, want %v", k, got, float64(i)*100)
		}
		if got := b.Center(k); got != float64(i)*100+50 {
			t.Errorf("Center(%q) = %v", k, got)
		}
	}
}

func TestBandPadding(t *testing.T) {
	// n=2, padding 0.25 both: step = 100 / (2 - 0.25 + 0.5) = 44.44..
	b := NewBand([]string{"A", "B"}, [2]float64{0, 100}, 0.25, 0.25)

	step := 100 / 2.25
	if !approx(b.Step(), step) {
		t.Errorf("Step() = %v, want %v", b.Step(), step)
	}
	if !approx(b.Bandwidth(), step*0.75) {
		t.Errorf("Bandwidth() = %v, want %v", b.Bandwidth(), step*0.75)
	}
	// Outer padding is symmetric.
	left := b.Position("A")
	right := 100 - (b.Position("B") + b.Bandwidth())
	if !approx(left, right) {
		t.Errorf("outer padding asymmetric: %v vs %v", left, right)
	}
}

func TestBandUnknownKey(t *testing.T) {
	b := NewBand([]string{"A"}, [2]float64{0, 10}, 0, 0)
	if !math.IsNaN(b.Position("Z")) {
		t.Error("Position of unknown key should be NaN")
	}
	if _, ok := b.Lookup("Z"); ok {
		t.Error("Lookup of unknown key should fail")
	}
}

func TestBandEmptyDomain(t *testing.T) {
	b := NewBand(nil, [2]float64{0, 100}, 0.25, 0.25)
	if _, ok := b.At(50); ok {
		t.Error("At on empty domain should fail")
	}
	if len(b.Domain()) != 0 {
		t.Error("Domain should be empty")
	}
}

func TestBandAt(t *testing.T) {
	b := NewBand([]string{"A", "B", "C"}, [2]float64{0, 300}, 0, 0)

	tests := []struct {
		pos  float64
		want string
	}{
		{-50, "A"},
		{0, "A"},
		{99, "A"},
		{100, "B"},
		{250, "C"},
		{1000, "C"},
	}
	for _, tt := range tests {
		got, ok := b.At(tt.pos)
		if !ok || got != tt.want {
			t.Errorf("At(%v) = %q, %v; want %q", tt.pos, got, ok, tt.want)
		}
	}
}

func TestTimePositionAndInvert(t *testing.T) {
	s := NewTime(date(2020, 1, 1), date(2020, 1, 11), [2]float64{0, 100})

	if got := s.Position(date(2020, 1, 1)); got != 0 {
		t.Errorf("Position(start) = %v", got)
	}
	if got := s.Position(date(2020, 1, 11)); got != 100 {
		t.Errorf("Position(end) = %v", got)
	}
	if got := s.Position(date(2020, 1, 3)); !approx(got, 20) {
		t.Errorf("Position(day 3) = %v, want 20", got)
	}
	if got := s.Invert(20); !got.Equal(date(2020, 1, 3)) {
		t.Errorf("Invert(20) = %v", got)
	}
}

func TestTimeDegenerateDomain(t *testing.T) {
	s := NewTime(date(2020, 1, 1), date(2020, 1, 1), [2]float64{0, 100})
	if got := s.Position(date(2021, 1, 1)); got != 50 {
		t.Errorf("Position on zero-width domain = %v, want midpoint", got)
	}
	if ticks := s.Ticks(10); len(ticks) != 1 {
		t.Errorf("Ticks on zero-width domain = %v", ticks)
	}

	e := NewEmptyTime([2]float64{10, 30})
	if got := e.Position(date(2020, 1, 1)); got != 20 {
		t.Errorf("empty Position = %v", got)
	}
	if e.Ticks(5) != nil {
		t.Error("empty scale should have no ticks")
	}
	if !e.Invert(15).IsZero() {
		t.Error("empty Invert should be the zero time")
	}
}

func TestTimeRescale(t *testing.T) {
	s := NewTime(date(2020, 1, 1), date(2020, 1, 11), [2]float64{0, 100})

	if s.Rescale(1, 0) != s {
		t.Error("identity zoom should return the same scale")
	}
	if s.Rescale(0, 0) != s || s.Rescale(-1, 0) != s {
		t.Error("non-positive zoom factor should be ignored")
	}

	z := s.Rescale(2, 0)
	d := z.Domain()
	if !d[0].Equal(date(2020, 1, 1)) || !d[1].Equal(date(2020, 1, 6)) {
		t.Errorf("zoom x2 domain = %v", d)
	}
	// Zooming maps p to p*k + offset.
	day3 := date(2020, 1, 3)
	if got, want := z.Position(day3), s.Position(day3)*2; !approx(got, want) {
		t.Errorf("zoomed Position = %v, want %v", got, want)
	}

	pan := s.Rescale(1, 10)
	if got := pan.Position(date(2020, 1, 1)); !approx(got, 10) {
		t.Errorf("panned Position = %v, want 10", got)
	}
}

func TestTimeTicksDays(t *testing.T) {
	ticks := TimeTicks(date(2020, 1, 1), date(2020, 1, 11), 10)
	if len(ticks) != 11 {
		t.Fatalf("len(ticks) = %d, want 11: %v", len(ticks), ticks)
	}
	for i, tk := range ticks {
		if !tk.Equal(date(2020, 1, 1+i)) {
			t.Errorf("tick %d = %v", i, tk)
		}
	}
}

func TestTimeTicksAlignment(t *testing.T) {
	tests := []struct {
		name  string
		d0    time.Time
		d1    time.Time
		count int
		check func(time.Time) bool
	}{
		{
			"hours", date(2020, 1, 1).Add(90 * time.Minute), date(2020, 1, 2), 8,
			func(v time.Time) bool { return v.Minute() == 0 && v.Hour()%3 == 0 },
		},
		{
			"months", date(2020, 1, 15), date(2021, 1, 15), 12,
			func(v time.Time) bool { return v.Day() == 1 && v.Hour() == 0 },
		},
		{
			"years", date(1900, 1, 1), date(2000, 1, 1), 10,
			func(v time.Time) bool { return v.YearDay() == 1 && v.Year()%10 == 0 },
		},
		{
			"seconds", date(2020, 1, 1), date(2020, 1, 1).Add(time.Minute), 4,
			func(v time.Time) bool { return v.Second()%15 == 0 && v.Nanosecond() == 0 },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := TimeTicks(tt.d0, tt.d1, tt.count)
			if len(ticks) < 2 {
				t.Fatalf("too few ticks: %v", ticks)
			}
			for _, tk := range ticks {
				if tk.Before(tt.d0) || tk.After(tt.d1) {
					t.Errorf("tick %v outside domain", tk)
				}
				if !tt.check(tk) {
					t.Errorf("tick %v misaligned", tk)
				}
			}
		})
	}
}

func TestTimeTicksReversed(t *testing.T) {
	ticks := TimeTicks(date(2020, 1, 5), date(2020, 1, 1), 4)
	if len(ticks) == 0 || !ticks[0].Equal(date(2020, 1, 5)) {
		t.Errorf("reversed ticks = %v", ticks)
	}
}

func TestTimeTicksMilliseconds(t *testing.T) {
	d0 := date(2020, 1, 1)
	ticks := TimeTicks(d0, d0.Add(100*time.Millisecond), 10)
	if len(ticks) != 11 {
		t.Fatalf("len(ticks) = %d, want 11", len(ticks))
	}
	if !ticks[1].Equal(d0.Add(10 * time.Millisecond)) {
		t.Errorf("ticks[1] = %v", ticks[1])
	}
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{date(2020, 1, 1), "2020"},
		{date(2020, 3, 1), "March"},
		{date(2020, 1, 7), "Tue 07"},
		{date(2020, 1, 5), "Jan 05"}, // Sunday
		{date(2020, 1, 1).Add(15 * time.Hour), "03 PM"},
		{date(2020, 1, 1).Add(15*time.Hour + 30*time.Minute), "03:30"},
		{date(2020, 1, 1).Add(45 * time.Second), ":45"},
		{date(2020, 1, 1).Add(250 * time.Millisecond), ".250"},
	}
	for _, tt := range tests {
		if got := FormatTick(tt.in); got != tt.want {
			t.Errorf("FormatTick(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTickCount(t *testing.T) {
	tests := []struct {
		extent float64
		want   int
	}{
		{0, 2},
		{-10, 2},
		{math.NaN(), 2},
		{99, 2},
		{500, 10},
		{1000, 20},
	}
	for _, tt := range tests {
		if got := TickCount(tt.extent); got != tt.want {
			t.Errorf("TickCount(%v) = %d, want %d", tt.extent, got, tt.want)
		}
	}
}

func TestCheckRange(t *testing.T) {
	tests := []struct {
		r       [2]float64
		wantErr bool
	}{
		{[2]float64{0, 500}, false},
		{[2]float64{50, 50}, true},
		{[2]float64{50, -50}, true},
		{[2]float64{math.NaN(), 10}, true},
		{[2]float64{0, math.Inf(1)}, true},
	}
	for _, tt := range tests {
		err := CheckRange(tt.r)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckRange(%v) = %v, wantErr %v", tt.r, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeDegenerateScale) {
			t.Errorf("CheckRange(%v) code = %s", tt.r, errors.GetCode(err))
		}
	}
}

func TestOrientedPoint(t *testing.T) {
	b := NewBand([]string{"A", "B"}, [2]float64{0, 200}, 0, 0)

	v := Orient[string](b, orient.Vertical)
	if got := v.Point(geom.Point{X: 7, Y: 3}, "B"); got != (geom.Point{X: 7, Y: 100}) {
		t.Errorf("vertical Point = %v", got)
	}
	h := Orient[string](b, orient.Horizontal)
	if got := h.Point(geom.Point{X: 7, Y: 3}, "B"); got != (geom.Point{X: 100, Y: 3}) {
		t.Errorf("horizontal Point = %v", got)
	}
	if v.RangeMax() != 200 || v.Degenerate() {
		t.Error("unexpected range")
	}
}

func TestSelectors(t *testing.T) {
	st := state.NewSelectors()
	sc := NewSelectors(st)

	s := state.Reduce(state.New(nil), state.Resized{Width: 600, Height: 600})
	s = state.Reduce(s, state.ActivitiesLoaded{Activities: []state.Activity{
		{ID: "1", Series: "A", Start: date(2020, 1, 1), Finish: date(2020, 1, 3)},
		{ID: "2", Series: "B", Start: date(2020, 1, 2), Finish: date(2020, 1, 11)},
		{ID: "bad", Series: "C", Start: date(2030, 1, 2), Finish: date(2020, 1, 1)},
	}})

	tm := sc.Time(s)
	d := tm.Domain()
	if !d[0].Equal(date(2020, 1, 1)) || !d[1].Equal(date(2020, 1, 11)) {
		t.Errorf("time domain = %v, rejected activity must not widen it", d)
	}
	if tm.Range() != [2]float64{50, 550} {
		t.Errorf("time range = %v", tm.Range())
	}
	if got := sc.Band(s).Domain(); len(got) != 3 {
		t.Errorf("band domain = %v", got)
	}
	if sc.OrientedTime(s).Orientation != orient.Vertical || sc.OrientedBand(s).Orientation != orient.Horizontal {
		t.Error("oriented scales carry wrong orientation")
	}
	if sc.TickCount(s) != 10 {
		t.Errorf("TickCount = %d", sc.TickCount(s))
	}
	if len(sc.Diagnostics(s)) != 0 {
		t.Errorf("Diagnostics = %v", sc.Diagnostics(s))
	}

	if sc.Time(s) != tm {
		t.Error("time scale not stable across calls")
	}

	zoomed := state.Reduce(s, state.Zoomed{Zoom: state.ZoomEvent{K: 2}})
	if sc.Time(zoomed) == tm {
		t.Error("zoom did not rescale")
	}
	if sc.BaseTime(zoomed) != sc.BaseTime(s) {
		t.Error("zoom must not rebuild the base scale")
	}
}

func TestSelectorsDegenerateView(t *testing.T) {
	sc := NewSelectors(state.NewSelectors())
	s := state.New(nil)

	diags := sc.Diagnostics(s)
	if len(diags) != 2 {
		t.Fatalf("Diagnostics = %v, want 2", diags)
	}
	for _, err := range diags {
		if !errors.Is(err, errors.ErrCodeDegenerateScale) {
			t.Errorf("unexpected error %v", err)
		}
	}
	if !sc.OrientedTime(s).Degenerate() {
		t.Error("zero view should give a degenerate time scale")
	}
}
