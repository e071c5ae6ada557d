// Package timeline wires the chart selectors into one graph and wraps it in
// a small store.
//
// [NewGraph] builds a complete, independent selector graph. Every selector
// in it owns its cache, so graphs never share memoized values. [Timeline]
// pairs a graph with the current [state.State] and applies events to it.
package timeline

import (
	"github.com/matzehuels/rxtimeline/pkg/core/axis"
	"github.com/matzehuels/rxtimeline/pkg/core/content"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/core/tickmark"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Diagnostic is a non-fatal problem with the current snapshot.
type Diagnostic struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// ViewModel is the complete derived geometry of one snapshot.
type ViewModel struct {
	View            state.View                  `json:"view"`
	TimeOrientation orient.Orientation          `json:"timeOrientation"`
	StrokeWidth     float64                     `json:"strokeWidth"`
	TimeAxis        axis.Axis                   `json:"timeAxis"`
	ResourceAxis    axis.Axis                   `json:"resourceAxis"`
	Events          []content.EventRectangle    `json:"events"`
	Resources       []content.ResourceRectangle `json:"resources"`
	Rejected        []state.Rejection           `json:"rejected,omitempty"`
	Diagnostics     []Diagnostic                `json:"diagnostics,omitempty"`
}

// Axis returns the axis of the given type.
func (vm ViewModel) Axis(a orient.AxisType) axis.Axis {
	return orient.MatchAxis(a, vm.TimeAxis, vm.ResourceAxis)
}

// Graph is the full selector graph of a chart.
type Graph struct {
	State     *state.Selectors
	Scales    *scale.Selectors
	Ticks     *tickmark.Selectors
	Axes      *axis.Selectors
	Content   *content.Selectors
	ViewModel state.Sel[ViewModel]
}

// NewGraph builds a new graph with empty caches.
func NewGraph() *Graph {
	st := state.NewSelectors()
	sc := scale.NewSelectors(st)
	tm := tickmark.NewSelectors(st, sc)
	ax := axis.NewSelectors(st, sc, tm)
	ct := content.NewSelectors(st, sc)

	diagnostics := selector.Map(sc.Diagnostics, func(errs []error) []Diagnostic {
		if len(errs) == 0 {
			return nil
		}
		out := make([]Diagnostic, len(errs))
		for i, err := range errs {
			out[i] = Diagnostic{Code: errors.GetCode(err), Message: err.Error()}
		}
		return out
	})

	return &Graph{
		State:   st,
		Scales:  sc,
		Ticks:   tm,
		Axes:    ax,
		Content: ct,
		ViewModel: selector.Struct[*state.State, ViewModel](
			selector.FieldOf("View", st.View),
			selector.FieldOf("TimeOrientation", st.TimeOrientation),
			selector.FieldOf("StrokeWidth", selector.Map(st.Options, func(o *options.Options) float64 { return o.StrokeWidth })),
			selector.FieldOf("TimeAxis", ax.Axes.Time),
			selector.FieldOf("ResourceAxis", ax.Axes.Resources),
			selector.FieldOf("Events", ct.Events),
			selector.FieldOf("Resources", ct.Resources),
			selector.FieldOf("Rejected", st.Rejected),
			selector.FieldOf("Diagnostics", diagnostics),
		),
	}
}

// Drop turns the drag in progress in s into a move event.
func (g *Graph) Drop(s *state.State) (state.Moved, error) {
	return content.Drop(g.State.ValidActivities(s), g.Content.Scales(s), g.State.Options(s), s.Drag)
}
