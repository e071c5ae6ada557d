package state

import (
	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
)

// Sel is a selector over a state snapshot.
type Sel[T any] = selector.Selector[*State, T]

// Selectors are the leaf selectors of the chart graph: slices of the snapshot
// and the values derived directly from them. Each call to [NewSelectors]
// returns fresh instances with their own caches.
type Selectors struct {
	View             Sel[View]
	TimeOrientation  Sel[orient.Orientation]
	Activities       Sel[[]Activity]
	Declared         Sel[[]string]
	Drag             Sel[*DragEvent]
	Zoom             Sel[*ZoomEvent]
	HoveredResource  Sel[string]
	SelectedResource Sel[string]
	Options          Sel[*options.Options]

	ResourceOrientation Sel[orient.Orientation]
	AxisOrientation     orient.ByAxis[Sel[orient.Orientation]]

	Validation      Sel[Validation]
	ValidActivities Sel[[]Activity]
	Rejected        Sel[[]Rejection]
	Resources       Sel[[]string]

	// TopLeft is the top-left corner of the plot area.
	TopLeft Sel[geom.Point]
	// MarginAlong is the leading margin of an axis drawn along the
	// orientation: top for Vertical, left for Horizontal.
	MarginAlong orient.ByOrientation[Sel[float64]]
	// Range is the pixel interval available to an axis drawn along the
	// orientation.
	Range orient.ByOrientation[Sel[[2]float64]]

	AxisOptions orient.ByAxis[Sel[options.Axis]]
}

// NewSelectors builds the leaf selectors.
func NewSelectors() *Selectors {
	s := &Selectors{
		View:             selector.Slice(func(s *State) View { return s.View }),
		TimeOrientation:  selector.Slice(func(s *State) orient.Orientation { return s.TimeOrientation }),
		Activities:       selector.Slice(func(s *State) []Activity { return s.Activities }),
		Declared:         selector.Slice(func(s *State) []string { return s.Resources }),
		Drag:             selector.Slice(func(s *State) *DragEvent { return s.Drag }),
		Zoom:             selector.Slice(func(s *State) *ZoomEvent { return s.Zoom }),
		HoveredResource:  selector.Slice(func(s *State) string { return s.HoveredResource }),
		SelectedResource: selector.Slice(func(s *State) string { return s.SelectedResource }),
		Options:          selector.Slice(optionsOf),
	}

	s.ResourceOrientation = selector.Map(s.TimeOrientation, orient.Orientation.Flip)
	s.AxisOrientation = orient.ByAxis[Sel[orient.Orientation]]{
		Time:      s.TimeOrientation,
		Resources: s.ResourceOrientation,
	}

	s.Validation = selector.Map2(s.Activities, s.Declared, Validate)
	s.ValidActivities = selector.Map(s.Validation, func(v Validation) []Activity { return v.Valid })
	s.Rejected = selector.Map(s.Validation, func(v Validation) []Rejection { return v.Rejected })
	s.Resources = selector.Map2(s.Activities, s.Declared, Resources)

	margins := selector.Map(s.Options, func(o *options.Options) options.Margins { return o.Margin })
	s.TopLeft = selector.Map(margins, func(m options.Margins) geom.Point {
		return geom.Point{X: m.Left, Y: m.Top}
	})
	s.MarginAlong = orient.ByOrientation[Sel[float64]]{
		Vertical:   selector.Map(margins, func(m options.Margins) float64 { return m.Top }),
		Horizontal: selector.Map(margins, func(m options.Margins) float64 { return m.Left }),
	}
	s.Range = orient.ByOrientation[Sel[[2]float64]]{
		Vertical: selector.Map2(s.View, margins, func(v View, m options.Margins) [2]float64 {
			return [2]float64{m.Top, v.Height - m.Bottom}
		}),
		Horizontal: selector.Map2(s.View, margins, func(v View, m options.Margins) [2]float64 {
			return [2]float64{m.Left, v.Width - m.Right}
		}),
	}

	s.AxisOptions = orient.ByAxis[Sel[options.Axis]]{
		Time:      selector.Map(s.Options, func(o *options.Options) options.Axis { return o.TimeAxis }),
		Resources: selector.Map(s.Options, func(o *options.Options) options.Axis { return o.ResourceAxis }),
	}
	return s
}

var defaultOptions = func() *options.Options {
	o := options.Default()
	return &o
}()

func optionsOf(s *State) *options.Options {
	if s.Options == nil {
		return defaultOptions
	}
	return s.Options
}
