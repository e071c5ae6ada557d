// Package state holds the immutable chart snapshot and its transitions.
//
// A [State] is never mutated once published. Every change is expressed as an
// [Event] and applied with [Reduce], which returns a new snapshot that shares
// every untouched field with the old one. Sharing is what lets the selector
// graph skip recomputation: a slice that was not replaced compares equal by
// identity.
package state

import (
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
)

// View is the size of the drawing surface in user units.
type View struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Activity is one scheduled item on a resource lane.
type Activity struct {
	ID     string    `json:"id,omitempty" bson:"_id,omitempty"`
	Series string    `json:"series" bson:"series"`
	Start  time.Time `json:"start" bson:"start"`
	Finish time.Time `json:"finish" bson:"finish"`
	Type   string    `json:"type,omitempty" bson:"type,omitempty"`
	Title  string    `json:"title,omitempty" bson:"title,omitempty"`
}

// Duration returns Finish minus Start.
func (a Activity) Duration() time.Duration {
	return a.Finish.Sub(a.Start)
}

// DragEvent is an in-progress drag of one activity, as a pixel offset from
// its resting position.
type DragEvent struct {
	ActivityID string  `json:"activityId"`
	DX         float64 `json:"dx"`
	DY         float64 `json:"dy"`
}

// ZoomEvent is a zoom transform: positions p on the time axis are mapped
// to p*K + t where t is X for a horizontal time axis and Y for a vertical one.
type ZoomEvent struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the zoom transform that changes nothing.
var Identity = ZoomEvent{K: 1}

// State is one snapshot of everything the chart geometry depends on.
type State struct {
	View            View               `json:"view"`
	TimeOrientation orient.Orientation `json:"timeOrientation"`
	Activities      []Activity         `json:"activities"`

	// Resources is the declared lane order. When empty, lanes are the
	// distinct activity series in first-seen order.
	Resources []string `json:"resources,omitempty"`

	Drag *DragEvent `json:"drag,omitempty"`
	Zoom *ZoomEvent `json:"zoom,omitempty"`

	HoveredResource  string `json:"hoveredResource,omitempty"`
	SelectedResource string `json:"selectedResource,omitempty"`

	Options *options.Options `json:"-"`
}

// New returns the initial snapshot for opts. The time orientation starts at
// the configured orientation.
func New(opts *options.Options) *State {
	if opts == nil {
		d := options.Default()
		opts = &d
	}
	return &State{
		TimeOrientation: opts.Orientation,
		Options:         opts,
	}
}

// ResourceOrientation is the orientation of the resource axis, which is
// always perpendicular to the time axis.
func (s *State) ResourceOrientation() orient.Orientation {
	return s.TimeOrientation.Flip()
}

// Activity returns the activity with the given ID.
func (s *State) Activity(id string) (Activity, bool) {
	for _, a := range s.Activities {
		if a.ID == id {
			return a, true
		}
	}
	return Activity{}, false
}
