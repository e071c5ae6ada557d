package content

import (
	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Drop converts a finished drag into a move. The activity lands in the lane
// under the center of its dragged rectangle and starts at the time under
// its dragged leading edge.
func Drop(acts []state.Activity, sc Scales, opts *options.Options, drag *state.DragEvent) (state.Moved, error) {
	if drag == nil {
		return state.Moved{}, errors.New(errors.ErrCodeInvalidDragEvent, "no drag in progress")
	}

	var (
		a     state.Activity
		found bool
	)
	for _, c := range acts {
		if c.ID == drag.ActivityID {
			a, found = c, true
			break
		}
	}
	if !found {
		return state.Moved{}, errors.New(errors.ErrCodeInvalidDragEvent, "activity %q is not on the chart", drag.ActivityID)
	}

	style := opts.ActivityFor(a.Type)
	if style.DisableDrag {
		return state.Moved{}, errors.New(errors.ErrCodeInvalidDragEvent, "dragging is disabled for activity %q", a.ID)
	}
	r, ok := sc.ActivityRect(a, style)
	if !ok {
		return state.Moved{}, errors.New(errors.ErrCodeInvalidDragEvent, "activity %q cannot be placed", a.ID)
	}

	moved := r.Translate(geom.Point{X: drag.DX, Y: drag.DY})
	resourceOrientation := sc.TimeOrientation.Flip()

	series, ok := sc.Band.At(moved.Center().Coord(resourceOrientation))
	if !ok {
		return state.Moved{}, errors.New(errors.ErrCodeInvalidDragEvent, "no lane to drop activity %q into", a.ID)
	}
	start := sc.Time.Invert(moved.Min().Coord(sc.TimeOrientation))

	return state.Moved{ActivityID: a.ID, Series: series, Start: start}, nil
}
