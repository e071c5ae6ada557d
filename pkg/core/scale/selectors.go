package scale

import (
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Selectors derive the chart scales from a snapshot.
type Selectors struct {
	// Band is the resource scale.
	Band state.Sel[*Band]
	// BaseTime is the time scale fitted to the data, before zoom.
	BaseTime state.Sel[*Time]
	// Time is BaseTime seen through the current zoom transform.
	Time state.Sel[*Time]

	OrientedBand state.Sel[Oriented[string]]
	OrientedTime state.Sel[Oriented[time.Time]]

	// TickCount is the number of time ticks to request.
	TickCount state.Sel[int]
	// Diagnostics lists degenerate ranges; empty when both are usable.
	Diagnostics state.Sel[[]error]
}

type timeDomain struct {
	lo, hi time.Time
	ok     bool
}

// NewSelectors builds the scale selectors on top of st.
func NewSelectors(st *state.Selectors) *Selectors {
	s := &Selectors{}

	timeRange := orient.SelectByOrientation(st.TimeOrientation, st.Range)
	resourceRange := orient.SelectByOrientation(st.ResourceOrientation, st.Range)
	gap := selector.Map(st.Options, func(o *options.Options) float64 { return o.Resource.Gap })

	s.Band = selector.Map3(st.Resources, resourceRange, gap, func(keys []string, r [2]float64, gap float64) *Band {
		return NewBand(keys, r, gap, gap)
	})

	domain := selector.Map(st.ValidActivities, func(acts []state.Activity) timeDomain {
		times := make([]time.Time, 0, 2*len(acts))
		for _, a := range acts {
			times = append(times, a.Start, a.Finish)
		}
		lo, hi, ok := Extent(times...)
		return timeDomain{lo: lo, hi: hi, ok: ok}
	})
	s.BaseTime = selector.Map2(domain, timeRange, func(d timeDomain, r [2]float64) *Time {
		if !d.ok {
			return NewEmptyTime(r)
		}
		return NewTime(d.lo, d.hi, r)
	})

	zoomOffset := selector.Map2(st.Zoom, st.TimeOrientation, func(z *state.ZoomEvent, o orient.Orientation) [2]float64 {
		if z == nil {
			return [2]float64{1, 0}
		}
		return [2]float64{z.K, orient.Match(o, z.Y, z.X)}
	})
	s.Time = selector.Map2(s.BaseTime, zoomOffset, func(t *Time, z [2]float64) *Time {
		return t.Rescale(z[0], z[1])
	})

	s.OrientedBand = selector.Map2(s.Band, st.ResourceOrientation, func(b *Band, o orient.Orientation) Oriented[string] {
		return Orient[string](b, o)
	})
	s.OrientedTime = selector.Map2(s.Time, st.TimeOrientation, func(t *Time, o orient.Orientation) Oriented[time.Time] {
		return Orient[time.Time](t, o)
	})

	s.TickCount = selector.Map(timeRange, func(r [2]float64) int {
		return TickCount(r[1] - r[0])
	})

	s.Diagnostics = selector.Map2(timeRange, resourceRange, func(tr, rr [2]float64) []error {
		var errs []error
		if err := CheckRange(tr); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeDegenerateScale, err, "time axis"))
		}
		if err := CheckRange(rr); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeDegenerateScale, err, "resource axis"))
		}
		return errs
	})
	return s
}
