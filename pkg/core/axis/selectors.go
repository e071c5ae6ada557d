package axis

import (
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/tickmark"
)

// Selectors derive both axes.
type Selectors struct {
	Axes orient.ByAxis[state.Sel[Axis]]
}

type gridParams[V any] struct {
	Values        []V
	Scale         scale.Oriented[V]
	TopLeft       geom.Point
	OtherRangeMax float64
	OtherMargin   float64
	Degenerate    bool
}

// NewSelectors builds the axis selectors.
func NewSelectors(st *state.Selectors, sc *scale.Selectors, tm *tickmark.Selectors) *Selectors {
	degenerate := selector.Map(sc.Diagnostics, func(errs []error) bool { return len(errs) > 0 })
	rangeMax := orient.ByAxis[state.Sel[float64]]{
		Time:      selector.Map(sc.OrientedTime, scale.Oriented[time.Time].RangeMax),
		Resources: selector.Map(sc.OrientedBand, scale.Oriented[string].RangeMax),
	}

	return &Selectors{
		Axes: orient.ByAxis[state.Sel[Axis]]{
			Time:      axisSelector(st, orient.Time, sc.OrientedTime, tm.TimeValues, tm.Marks.Time, rangeMax, degenerate),
			Resources: axisSelector(st, orient.Resources, sc.OrientedBand, tm.ResourceValues, tm.Marks.Resources, rangeMax, degenerate),
		},
	}
}

func axisSelector[V any](
	st *state.Selectors,
	a orient.AxisType,
	oriented state.Sel[scale.Oriented[V]],
	values state.Sel[[]V],
	marks state.Sel[[]tickmark.TickMark],
	rangeMax orient.ByAxis[state.Sel[float64]],
	degenerate state.Sel[bool],
) state.Sel[Axis] {
	axisOpts := st.AxisOptions.Get(a)
	showAxisLine := selector.Map(axisOpts, func(o options.Axis) bool { return o.ShowAxisLine })
	showGridLines := selector.Map(axisOpts, func(o options.Axis) bool { return o.ShowGridLines })
	otherMargin := orient.SelectByOrientation(st.AxisOrientation.Get(a.Flip()), st.MarginAlong)

	line := selector.Map4(showAxisLine, oriented, st.TopLeft, degenerate,
		func(show bool, s scale.Oriented[V], topLeft geom.Point, degenerate bool) *geom.Line {
			if !show || degenerate {
				return nil
			}
			l := ScaleLine(topLeft, s)
			return &l
		})

	params := selector.Struct[*state.State, gridParams[V]](
		selector.FieldOf("Values", values),
		selector.FieldOf("Scale", oriented),
		selector.FieldOf("TopLeft", st.TopLeft),
		selector.FieldOf("OtherRangeMax", rangeMax.Get(a.Flip())),
		selector.FieldOf("OtherMargin", otherMargin),
		selector.FieldOf("Degenerate", degenerate),
	)
	gridLines := selector.Map2(showGridLines, params, func(show bool, p gridParams[V]) []geom.Line {
		if !show || p.Degenerate {
			return nil
		}
		return GridLines(p.Values, p.Scale, p.TopLeft, p.OtherRangeMax, p.OtherMargin)
	})

	return selector.Struct[*state.State, Axis](
		selector.FieldOf("GridLines", gridLines),
		selector.FieldOf("Line", line),
		selector.FieldOf("Orientation", st.AxisOrientation.Get(a)),
		selector.FieldOf("ShowGridLines", showGridLines),
		selector.FieldOf("TickMarks", marks),
	)
}
