// Package axis computes axis baselines and grid lines and assembles them
// with the tick marks into an [Axis] record.
//
// The geometry functions are pure and ignore the display toggles. Toggles
// are applied when the record is assembled, so the functions can be tested
// on their own.
package axis

import (
	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/core/scale"
	"github.com/matzehuels/rxtimeline/pkg/core/tickmark"
)

// Axis is everything needed to draw one axis.
type Axis struct {
	GridLines []geom.Line `json:"gridLines"`
	// Line is the baseline; nil when hidden or when the scale is degenerate.
	Line          *geom.Line          `json:"line,omitempty"`
	Orientation   orient.Orientation  `json:"orientation"`
	ShowGridLines bool                `json:"showGridLines"`
	TickMarks     []tickmark.TickMark `json:"tickMarks"`
}

// Line returns the baseline of an axis drawn along o: it starts at topLeft
// and ends where the coordinate along o reaches rangeMax.
func Line(topLeft geom.Point, o orient.Orientation, rangeMax float64) geom.Line {
	return geom.NewLine(topLeft, topLeft.Along(o, rangeMax))
}

// ScaleLine is [Line] for an oriented scale.
func ScaleLine[V any](topLeft geom.Point, s scale.Oriented[V]) geom.Line {
	return Line(topLeft, s.Orientation, s.RangeMax())
}

// GridLine returns the grid line through pos on an axis drawn along o. It
// runs across the chart, perpendicular to the axis, for the extent of the
// other axis: otherRangeMax less otherMargin.
func GridLine(topLeft geom.Point, o orient.Orientation, pos, otherRangeMax, otherMargin float64) geom.Line {
	return geom.NewOrientedLine(topLeft.Along(o, pos), otherRangeMax-otherMargin, o.Flip())
}

// GridLines returns one grid line per tick value, in order.
func GridLines[V any](values []V, s scale.Oriented[V], topLeft geom.Point, otherRangeMax, otherMargin float64) []geom.Line {
	out := make([]geom.Line, len(values))
	for i, v := range values {
		out[i] = GridLine(topLeft, s.Orientation, s.Scale.Position(v), otherRangeMax, otherMargin)
	}
	return out
}
