package state

import (
	"slices"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
)

// Event is a discrete change to the chart. The set of events is closed.
type Event interface {
	apply(s State) State
}

// Reduce applies e to s and returns the resulting snapshot. s is not
// modified. A nil event returns s unchanged.
func Reduce(s *State, e Event) *State {
	if e == nil {
		return s
	}
	next := e.apply(*s)
	return &next
}

// Resized records a new view size.
type Resized struct {
	Width, Height float64
}

func (e Resized) apply(s State) State {
	s.View = View{Width: e.Width, Height: e.Height}
	return s
}

// OrientationChanged sets the time axis orientation. Invalid orientations
// are ignored.
type OrientationChanged struct {
	Orientation orient.Orientation
}

func (e OrientationChanged) apply(s State) State {
	if !e.Orientation.Valid() {
		return s
	}
	s.TimeOrientation = e.Orientation
	return s
}

// OrientationFlipped swaps the two axes.
type OrientationFlipped struct{}

func (OrientationFlipped) apply(s State) State {
	s.TimeOrientation = s.TimeOrientation.Flip()
	return s
}

// ActivitiesLoaded replaces the activity set. Any drag in progress is
// cancelled since its activity may be gone.
type ActivitiesLoaded struct {
	Activities []Activity
}

func (e ActivitiesLoaded) apply(s State) State {
	s.Activities = slices.Clone(e.Activities)
	s.Drag = nil
	return s
}

// ResourcesDeclared fixes the lane order. An empty list falls back to the
// series found in the data.
type ResourcesDeclared struct {
	Resources []string
}

func (e ResourcesDeclared) apply(s State) State {
	s.Resources = slices.Clone(e.Resources)
	return s
}

// OptionsChanged replaces the merged options and resets the time axis
// orientation to the configured one.
type OptionsChanged struct {
	Options *options.Options
}

func (e OptionsChanged) apply(s State) State {
	if e.Options == nil {
		return s
	}
	s.Options = e.Options
	s.TimeOrientation = e.Options.Orientation
	return s
}

// Dragged updates the offset of an in-progress drag.
type Dragged struct {
	ActivityID string
	DX, DY     float64
}

func (e Dragged) apply(s State) State {
	s.Drag = &DragEvent{ActivityID: e.ActivityID, DX: e.DX, DY: e.DY}
	return s
}

// DragEnded cancels the drag without moving anything.
type DragEnded struct{}

func (DragEnded) apply(s State) State {
	s.Drag = nil
	return s
}

// Moved relocates an activity to a lane and start time, keeping its
// duration. It also ends the drag.
type Moved struct {
	ActivityID string
	Series     string
	Start      time.Time
}

func (e Moved) apply(s State) State {
	s.Drag = nil
	i := slices.IndexFunc(s.Activities, func(a Activity) bool { return a.ID == e.ActivityID })
	if i < 0 {
		return s
	}
	acts := slices.Clone(s.Activities)
	a := acts[i]
	d := a.Duration()
	a.Series = e.Series
	a.Start = e.Start
	a.Finish = e.Start.Add(d)
	acts[i] = a
	s.Activities = acts
	return s
}

// Zoomed sets the zoom transform.
type Zoomed struct {
	Zoom ZoomEvent
}

func (e Zoomed) apply(s State) State {
	z := e.Zoom
	s.Zoom = &z
	return s
}

// ZoomReset clears the zoom transform.
type ZoomReset struct{}

func (ZoomReset) apply(s State) State {
	s.Zoom = nil
	return s
}

// ResourceHovered marks a lane as hovered. An empty Resource clears it.
type ResourceHovered struct {
	Resource string
}

func (e ResourceHovered) apply(s State) State {
	s.HoveredResource = e.Resource
	return s
}

// ResourceSelected marks a lane as selected. Selecting the selected lane
// again clears the selection.
type ResourceSelected struct {
	Resource string
}

func (e ResourceSelected) apply(s State) State {
	if s.SelectedResource == e.Resource {
		s.SelectedResource = ""
	} else {
		s.SelectedResource = e.Resource
	}
	return s
}
