package scale

import (
	"math"
	"slices"
	"time"
)

// PixelsPerTick is the target spacing of time axis ticks.
const PixelsPerTick = 50

// TickCount returns the number of time ticks to request for an axis of the
// given pixel extent: one per [PixelsPerTick], at least two.
func TickCount(extent float64) int {
	if !(extent > 0) || math.IsInf(extent, 0) {
		return 2
	}
	return max(2, int(extent/PixelsPerTick))
}

type unit int

const (
	unitSecond unit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

type interval struct {
	unit unit
	step int
	size time.Duration
}

var tickIntervals = []interval{
	{unitSecond, 1, time.Second},
	{unitSecond, 5, 5 * time.Second},
	{unitSecond, 15, 15 * time.Second},
	{unitSecond, 30, 30 * time.Second},
	{unitMinute, 1, time.Minute},
	{unitMinute, 5, 5 * time.Minute},
	{unitMinute, 15, 15 * time.Minute},
	{unitMinute, 30, 30 * time.Minute},
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

// maxTickIterations bounds calendar walking for pathological domains.
const maxTickIterations = 1 << 16

// TimeTicks returns about count calendar-aligned instants in [d0, d1].
//
// The interval is the entry of a fixed ladder (1s, 5s, 15s, 30s, 1m, 5m,
// 15m, 30m, 1h, 3h, 6h, 12h, 1d, 2d, 1w, 1mo, 3mo, 1y) closest to
// (d1-d0)/count. Spans beyond the ladder use multi-year steps of 1, 2 or 5
// times a power of ten; spans below it use millisecond steps. Ticks are
// aligned in the location of d0. A reversed domain yields ticks in
// descending order.
func TimeTicks(d0, d1 time.Time, count int) []time.Time {
	if count < 1 {
		return nil
	}
	if d1.Before(d0) {
		ticks := TimeTicks(d1, d0, count)
		slices.Reverse(ticks)
		return ticks
	}
	if d0.Equal(d1) {
		return []time.Time{d0}
	}

	loc := d0.Location()
	span := d1.Sub(d0)
	target := float64(span) / float64(count)

	i, _ := slices.BinarySearchFunc(tickIntervals, target, func(iv interval, t float64) int {
		switch {
		case float64(iv.size) < t:
			return -1
		case float64(iv.size) > t:
			return 1
		}
		return 0
	})

	switch {
	case i == len(tickIntervals):
		years := linearStep(float64(span)/float64(durationYear), count)
		return walk(d0, d1, loc, unitYear, max(1, int(years)))
	case i == 0:
		ms := max(1, linearStep(float64(span)/float64(time.Millisecond), count))
		return milliTicks(d0, d1, loc, ms)
	}

	iv := tickIntervals[i]
	if prev := tickIntervals[i-1]; target/float64(prev.size) < float64(iv.size)/target {
		iv = prev
	}
	return walk(d0, d1, loc, iv.unit, iv.step)
}

// linearStep returns a step of 1, 2 or 5 times a power of ten that divides
// span into about count parts.
func linearStep(span float64, count int) float64 {
	step0 := span / float64(count)
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	switch e := step0 / step1; {
	case e >= math.Sqrt(50):
		step1 *= 10
	case e >= math.Sqrt(10):
		step1 *= 5
	case e >= math.Sqrt(2):
		step1 *= 2
	}
	return step1
}

func milliTicks(d0, d1 time.Time, loc *time.Location, step float64) []time.Time {
	lo := math.Ceil(float64(d0.UnixMilli()) / step)
	hi := math.Floor(float64(d1.UnixMilli()) / step)
	var out []time.Time
	for k := lo; k <= hi && len(out) < maxTickIterations; k++ {
		out = append(out, time.UnixMilli(int64(k*step)).In(loc))
	}
	return out
}

// walk steps through every unit boundary in [d0, d1] and keeps those whose
// calendar field is a multiple of step.
func walk(d0, d1 time.Time, loc *time.Location, u unit, step int) []time.Time {
	var out []time.Time
	t := floor(d0.In(loc), u)
	if t.Before(d0) {
		t = next(t, u)
	}
	for n := 0; !t.After(d1) && n < maxTickIterations; n++ {
		if field(t, u)%step == 0 {
			out = append(out, t)
		}
		t = next(t, u)
	}
	return out
}

func floor(t time.Time, u unit) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch u {
	case unitSecond:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case unitMinute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
	case unitHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case unitWeek:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
}

func next(t time.Time, u unit) time.Time {
	switch u {
	case unitSecond:
		return t.Add(time.Second)
	case unitMinute:
		return t.Add(time.Minute)
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

func field(t time.Time, u unit) int {
	switch u {
	case unitSecond:
		return t.Second()
	case unitMinute:
		return t.Minute()
	case unitHour:
		return t.Hour()
	case unitDay:
		return t.Day() - 1
	case unitMonth:
		return int(t.Month()) - 1
	case unitYear:
		return t.Year()
	}
	return 0
}

// FormatTick labels t by the finest calendar field that is not at its
// boundary: ".000" for milliseconds, ":05" for seconds, "03:04" for minutes,
// "03 PM" for hours, "Mon 02" for days ("Jan 02" on Sundays), "January" for
// months and "2006" for years.
func FormatTick(t time.Time) string {
	switch {
	case t.Nanosecond() != 0:
		return t.Format(".000")
	case t.Second() != 0:
		return t.Format(":05")
	case t.Minute() != 0:
		return t.Format("03:04")
	case t.Hour() != 0:
		return t.Format("03 PM")
	case t.Day() != 1:
		if t.Weekday() != time.Sunday {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	}
	return t.Format("2006")
}
