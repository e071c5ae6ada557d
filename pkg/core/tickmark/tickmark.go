// Package tickmark computes the labeled marks along an axis.
//
// Both axes share one routine, [Build]. What differs between them (how a
// tick value becomes a coordinate and a label) sits behind [Renderer], with
// one variant per axis type.
package tickmark

import (
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
)

// LabelGap is added to the tick line length to place the label. It is
// negative so the label overlaps the end of the tick line slightly.
const LabelGap = -2

// TickMark is one labeled mark on an axis.
type TickMark struct {
	Label string `json:"label"`
	// Position is the point on the axis baseline the mark belongs to.
	Position geom.Point `json:"position"`
	// Transform is Position as an SVG translation.
	Transform   string     `json:"transform"`
	LabelOffset geom.Point `json:"labelOffset"`
	// Line is the tick line relative to Position.
	Line     geom.Line `json:"line"`
	FontFace string    `json:"fontFace"`
	FontSize float64   `json:"fontSize"`
}

// Renderer turns tick values of one axis type into coordinates and labels.
type Renderer[V any] interface {
	Orientation() orient.Orientation
	Position(v V) float64
	Label(v V) string
}

// ResourceRenderer places resource ticks at the center of their lane and
// labels them with the resource key.
type ResourceRenderer struct {
	band        *scale.Band
	orientation orient.Orientation
}

// NewResourceRenderer returns the renderer for the resource axis.
func NewResourceRenderer(s scale.Oriented[string]) ResourceRenderer {
	b, _ := s.Scale.(*scale.Band)
	return ResourceRenderer{band: b, orientation: s.Orientation}
}

func (r ResourceRenderer) Orientation() orient.Orientation { return r.orientation }
func (r ResourceRenderer) Position(key string) float64    { return r.band.Center(key) }
func (r ResourceRenderer) Label(key string) string         { return key }

// TimeRenderer places time ticks at their scaled offset and labels them with
// the scale's tick format.
type TimeRenderer struct {
	scale       *scale.Time
	orientation orient.Orientation
}

// NewTimeRenderer returns the renderer for the time axis.
func NewTimeRenderer(s scale.Oriented[time.Time]) TimeRenderer {
	t, _ := s.Scale.(*scale.Time)
	return TimeRenderer{scale: t, orientation: s.Orientation}
}

func (r TimeRenderer) Orientation() orient.Orientation { return r.orientation }
func (r TimeRenderer) Position(v time.Time) float64     { return r.scale.Position(v) }
func (r TimeRenderer) Label(v time.Time) string         { return r.scale.Format(v) }

var (
	_ Renderer[string]    = ResourceRenderer{}
	_ Renderer[time.Time] = TimeRenderer{}
)

// Style holds what every tick of one axis has in common.
type Style struct {
	TopLeft     geom.Point
	LabelOffset geom.Point
	Line        geom.Line
	FontFace    string
	FontSize    float64
}

// New computes the tick mark for a single value.
func New[V any](v V, r Renderer[V], st Style) TickMark {
	pos := st.TopLeft.Along(r.Orientation(), r.Position(v))
	return TickMark{
		Label:       r.Label(v),
		Position:    pos,
		Transform:   pos.Transform(),
		LabelOffset: st.LabelOffset,
		Line:        st.Line,
		FontFace:    st.FontFace,
		FontSize:    st.FontSize,
	}
}

// Build computes the tick marks for values in order.
func Build[V any](values []V, r Renderer[V], st Style) []TickMark {
	out := make([]TickMark, len(values))
	for i, v := range values {
		out[i] = New(v, r, st)
	}
	return out
}

// LabelOffset returns the offset of a tick label from its tick position.
// other is the orientation of the opposite axis, along which ticks extend.
func LabelOffset(other orient.Orientation, tickLineLength float64) geom.Point {
	return geom.OffsetAlong(other, tickLineLength+LabelGap)
}

// Line returns the tick line from the local origin, drawn across the axis.
func Line(other orient.Orientation, tickLineLength float64) geom.Line {
	return geom.NewOrientedLine(geom.Origin, tickLineLength, other)
}
