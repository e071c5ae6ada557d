package scale

import (
	"math"
	"time"
)

// Time maps a continuous time domain linearly onto a numeric range.
//
// A scale built from an empty data set has no domain: it maps every time to
// the range midpoint and has no ticks. A zero-width domain behaves the same
// for positions but yields its single instant as a tick.
type Time struct {
	d0, d1 time.Time
	rng    [2]float64
	empty  bool
}

// NewTime returns a time scale over [d0, d1].
func NewTime(d0, d1 time.Time, rng [2]float64) *Time {
	return &Time{d0: d0, d1: d1, rng: rng}
}

// NewEmptyTime returns a time scale with no domain.
func NewEmptyTime(rng [2]float64) *Time {
	return &Time{rng: rng, empty: true}
}

// Position maps v to the range.
func (t *Time) Position(v time.Time) float64 {
	s0, s1 := seconds(t.d0), seconds(t.d1)
	if t.empty || s0 == s1 {
		return (t.rng[0] + t.rng[1]) / 2
	}
	return t.rng[0] + (seconds(v)-s0)/(s1-s0)*(t.rng[1]-t.rng[0])
}

// Invert maps a range position back to a time. Positions outside the range
// extrapolate linearly.
func (t *Time) Invert(p float64) time.Time {
	if t.empty {
		return time.Time{}
	}
	s0, s1 := seconds(t.d0), seconds(t.d1)
	r0, r1 := t.rng[0], t.rng[1]
	if r0 == r1 {
		return t.d0
	}
	return fromSeconds(s0+(p-r0)/(r1-r0)*(s1-s0), t.d0.Location())
}

// Rescale returns the scale seen through a zoom transform that maps a range
// position p to p*k + offset. The range is kept; the domain becomes the
// times visible in it.
func (t *Time) Rescale(k, offset float64) *Time {
	if t.empty || !(k > 0) || math.IsInf(k, 0) || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return t
	}
	if k == 1 && offset == 0 {
		return t
	}
	return &Time{
		d0:  t.Invert((t.rng[0] - offset) / k),
		d1:  t.Invert((t.rng[1] - offset) / k),
		rng: t.rng,
	}
}

// Domain returns the domain endpoints. Both are zero for an empty scale.
func (t *Time) Domain() [2]time.Time { return [2]time.Time{t.d0, t.d1} }

// Empty reports whether the scale has no domain.
func (t *Time) Empty() bool { return t.empty }

// Range returns the output interval.
func (t *Time) Range() [2]float64 { return t.rng }

// Ticks returns about count evenly spaced, calendar-aligned times within the
// domain. See [TimeTicks].
func (t *Time) Ticks(count int) []time.Time {
	if t.empty {
		return nil
	}
	return TimeTicks(t.d0, t.d1, count)
}

// Format labels a tick with the coarsest unit that still distinguishes it.
// See [FormatTick].
func (t *Time) Format(v time.Time) string {
	if !t.empty {
		v = v.In(t.d0.Location())
	}
	return FormatTick(v)
}

// Extent returns the earliest and latest of the given instants.
func Extent(times ...time.Time) (lo, hi time.Time, ok bool) {
	for i, v := range times {
		if i == 0 || v.Before(lo) {
			lo = v
		}
		if i == 0 || v.After(hi) {
			hi = v
		}
	}
	return lo, hi, len(times) > 0
}

func seconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// fromSeconds rounds to the millisecond; float seconds cannot carry more.
func fromSeconds(s float64, loc *time.Location) time.Time {
	return time.UnixMilli(int64(math.Round(s * 1000))).In(loc)
}
