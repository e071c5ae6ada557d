package tickmark

import (
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
)

// Selectors derive the tick values and tick marks of both axes.
type Selectors struct {
	ResourceValues state.Sel[[]string]
	TimeValues     state.Sel[[]time.Time]

	Style orient.ByAxis[state.Sel[Style]]
	Marks orient.ByAxis[state.Sel[[]TickMark]]
}

// NewSelectors builds the tick selectors.
func NewSelectors(st *state.Selectors, sc *scale.Selectors) *Selectors {
	s := &Selectors{
		ResourceValues: st.Resources,
		TimeValues: selector.Map2(sc.Time, sc.TickCount, func(t *scale.Time, n int) []time.Time {
			return t.Ticks(n)
		}),
	}
	s.Style = orient.ByAxis[state.Sel[Style]]{
		Time:      styleSelector(st, orient.Time),
		Resources: styleSelector(st, orient.Resources),
	}

	resourceRenderer := selector.Map(sc.OrientedBand, func(o scale.Oriented[string]) Renderer[string] {
		return NewResourceRenderer(o)
	})
	timeRenderer := selector.Map(sc.OrientedTime, func(o scale.Oriented[time.Time]) Renderer[time.Time] {
		return NewTimeRenderer(o)
	})
	// Either degenerate range drops the marks of both axes, as it does for
	// axis lines, grid lines and rectangles.
	degenerate := selector.Map(sc.Diagnostics, func(errs []error) bool { return len(errs) > 0 })

	s.Marks = orient.ByAxis[state.Sel[[]TickMark]]{
		Time:      marks(s.TimeValues, timeRenderer, s.Style.Time, degenerate),
		Resources: marks(s.ResourceValues, resourceRenderer, s.Style.Resources, degenerate),
	}
	return s
}

func marks[V any](values state.Sel[[]V], r state.Sel[Renderer[V]], style state.Sel[Style], degenerate state.Sel[bool]) state.Sel[[]TickMark] {
	return selector.Map4(values, r, style, degenerate, func(vs []V, r Renderer[V], st Style, degenerate bool) []TickMark {
		if degenerate {
			return nil
		}
		return Build(vs, r, st)
	})
}

// styleSelector assembles the shared tick style of axis a. Ticks extend
// along the orientation of the opposite axis.
func styleSelector(st *state.Selectors, a orient.AxisType) state.Sel[Style] {
	axisOpts := st.AxisOptions.Get(a)
	other := st.AxisOrientation.Get(a.Flip())

	tickLength := selector.Map(axisOpts, func(o options.Axis) float64 { return o.TickLineLength })
	spacing := selector.Map(tickLength, func(l float64) float64 { return l + LabelGap })

	labelOffset := orient.SelectByOrientation(other, orient.ByOrientation[state.Sel[geom.Point]]{
		Vertical: selector.Struct[*state.State, geom.Point](
			selector.FieldOf("X", selector.Const[*state.State](0.0)),
			selector.FieldOf("Y", spacing),
		),
		Horizontal: selector.Struct[*state.State, geom.Point](
			selector.FieldOf("X", spacing),
			selector.FieldOf("Y", selector.Const[*state.State](0.0)),
		),
	})

	line := orient.SelectByOrientation(other, orient.ByOrientation[state.Sel[geom.Line]]{
		Vertical:   selector.Map(tickLength, func(l float64) geom.Line { return Line(orient.Vertical, l) }),
		Horizontal: selector.Map(tickLength, func(l float64) geom.Line { return Line(orient.Horizontal, l) }),
	})

	return selector.Struct[*state.State, Style](
		selector.FieldOf("TopLeft", st.TopLeft),
		selector.FieldOf("LabelOffset", labelOffset),
		selector.FieldOf("Line", line),
		selector.FieldOf("FontFace", selector.Map(axisOpts, func(o options.Axis) string { return o.FontFace })),
		selector.FieldOf("FontSize", selector.Map(axisOpts, func(o options.Axis) float64 { return o.FontSize })),
	)
}
