package content

import (
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/selector"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
)

// Selectors derive the content rectangles.
type Selectors struct {
	Scales    state.Sel[Scales]
	Events    state.Sel[[]EventRectangle]
	Resources state.Sel[[]ResourceRectangle]
}

type eventParams struct {
	Activities []state.Activity
	Scales     Scales
	Options    *options.Options
	Drag       *state.DragEvent
	Degenerate bool
}

type resourceParams struct {
	Resources  []string
	Scales     Scales
	Hovered    string
	Selected   string
	Degenerate bool
}

// NewSelectors builds the content selectors.
func NewSelectors(st *state.Selectors, sc *scale.Selectors) *Selectors {
	s := &Selectors{
		Scales: selector.Struct[*state.State, Scales](
			selector.FieldOf("Band", sc.Band),
			selector.FieldOf("Time", sc.Time),
			selector.FieldOf("TimeOrientation", st.TimeOrientation),
		),
	}
	degenerate := selector.Map(sc.Diagnostics, func(errs []error) bool { return len(errs) > 0 })

	events := selector.Struct[*state.State, eventParams](
		selector.FieldOf("Activities", st.ValidActivities),
		selector.FieldOf("Scales", s.Scales),
		selector.FieldOf("Options", st.Options),
		selector.FieldOf("Drag", st.Drag),
		selector.FieldOf("Degenerate", degenerate),
	)
	s.Events = selector.Map(events, func(p eventParams) []EventRectangle {
		if p.Degenerate {
			return nil
		}
		return EventRectangles(p.Activities, p.Scales, p.Options, p.Drag)
	})

	lanes := selector.Struct[*state.State, resourceParams](
		selector.FieldOf("Resources", st.Resources),
		selector.FieldOf("Scales", s.Scales),
		selector.FieldOf("Hovered", st.HoveredResource),
		selector.FieldOf("Selected", st.SelectedResource),
		selector.FieldOf("Degenerate", degenerate),
	)
	s.Resources = selector.Map(lanes, func(p resourceParams) []ResourceRectangle {
		if p.Degenerate {
			return nil
		}
		return ResourceRectangles(p.Resources, p.Scales, p.Hovered, p.Selected)
	})
	return s
}
