// Package content computes the rectangles drawn inside the plot area: one
// per activity and one per resource lane.
//
// A rectangle always takes one dimension from the time scale and the other
// from the resource band. [Place] is the only place that decides which is
// which.
package content

import (
	"math"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/options"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/state"
)

// EventRectangle is the rectangle of one activity.
type EventRectangle struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Series    string  `json:"series"`
	Type      string  `json:"type,omitempty"`
	Transform string  `json:"transform"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`

	FontFace    string  `json:"fontFace"`
	FontSize    float64 `json:"fontSize"`
	Padding     float64 `json:"padding"`
	DisableDrag bool    `json:"disableDrag"`
	Dragged     bool    `json:"dragged"`
}

// Rect returns the bounds of r.
func (r EventRectangle) Rect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// ResourceRectangle is the background of one resource lane.
type ResourceRectangle struct {
	ID        string  `json:"id"`
	Transform string  `json:"transform"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Hovered   bool    `json:"hovered"`
	Selected  bool    `json:"selected"`
}

// Rect returns the bounds of r.
func (r ResourceRectangle) Rect() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Place returns the rectangle spanning timeBreadth from timePos along the
// time orientation and resourceBreadth from resourcePos across it.
func Place(timeOrientation orient.Orientation, timePos, timeBreadth, resourcePos, resourceBreadth float64) geom.Rect {
	resourceOrientation := timeOrientation.Flip()
	corner := geom.Origin.Along(timeOrientation, timePos).Along(resourceOrientation, resourcePos)
	size := geom.Origin.Along(timeOrientation, timeBreadth).Along(resourceOrientation, resourceBreadth)
	return geom.Rect{X: corner.X, Y: corner.Y, Width: size.X, Height: size.Y}
}

// Scales bundles what the rectangle geometry reads from the scales.
type Scales struct {
	Band            *scale.Band
	Time            *scale.Time
	TimeOrientation orient.Orientation
}

// ActivityRect places activity a. The resource breadth is the bandwidth
// less the lateral margin on each side. ok is false when a cannot be
// placed: its series is not a lane or it finishes before it starts.
func (sc Scales) ActivityRect(a state.Activity, style options.Activity) (r geom.Rect, ok bool) {
	lane, found := sc.Band.Lookup(a.Series)
	if !found {
		return geom.Rect{}, false
	}
	start := sc.Time.Position(a.Start)
	breadth := sc.Time.Position(a.Finish) - start
	if breadth < 0 || math.IsNaN(breadth) {
		return geom.Rect{}, false
	}
	margin := min(style.LateralMargin, sc.Band.Bandwidth()/2)
	return Place(sc.TimeOrientation, start, breadth, lane+margin, sc.Band.Bandwidth()-2*margin), true
}

// EventRectangles places every activity. Activities that cannot be placed
// are skipped. The dragged activity is offset by the drag unless dragging
// is disabled for its type.
func EventRectangles(acts []state.Activity, sc Scales, opts *options.Options, drag *state.DragEvent) []EventRectangle {
	out := make([]EventRectangle, 0, len(acts))
	for _, a := range acts {
		style := opts.ActivityFor(a.Type)
		r, ok := sc.ActivityRect(a, style)
		if !ok {
			continue
		}
		dragged := drag != nil && drag.ActivityID == a.ID && !style.DisableDrag
		if dragged {
			r = r.Translate(geom.Point{X: drag.DX, Y: drag.DY})
		}
		title := a.Title
		if title == "" {
			title = a.Type
		}
		out = append(out, EventRectangle{
			ID:          a.ID,
			Title:       title,
			Series:      a.Series,
			Type:        a.Type,
			Transform:   r.Transform(),
			X:           r.X,
			Y:           r.Y,
			Width:       r.Width,
			Height:      r.Height,
			FontFace:    style.FontFace,
			FontSize:    style.FontSize,
			Padding:     style.Padding,
			DisableDrag: style.DisableDrag,
			Dragged:     dragged,
		})
	}
	return out
}

// ResourceRectangles returns one lane rectangle per resource, spanning the
// full time range.
func ResourceRectangles(resources []string, sc Scales, hovered, selected string) []ResourceRectangle {
	tr := sc.Time.Range()
	out := make([]ResourceRectangle, 0, len(resources))
	for _, key := range resources {
		lane, ok := sc.Band.Lookup(key)
		if !ok {
			continue
		}
		r := Place(sc.TimeOrientation, tr[0], tr[1]-tr[0], lane, sc.Band.Bandwidth())
		out = append(out, ResourceRectangle{
			ID:        key,
			Transform: r.Transform(),
			X:         r.X,
			Y:         r.Y,
			Width:     r.Width,
			Height:    r.Height,
			Hovered:   key == hovered,
			Selected:  key == selected,
		})
	}
	return out
}
