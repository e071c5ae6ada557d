// Package geom provides the 2-D value types produced by the chart geometry.
// All coordinates are in user units (pixels in SVG).
package geom

import (
	"math"
	"strconv"

	"github.com/matzehuels/rxtimeline/pkg/core/orient"
)

// Point is a position in the chart plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Origin is the point (0, 0).
var Origin = Point{}

// Coord returns the coordinate of p measured along o.
func (p Point) Coord(o orient.Orientation) float64 {
	return orient.Match(o, p.Y, p.X)
}

// Along returns p with the coordinate along o replaced by v.
func (p Point) Along(o orient.Orientation, v float64) Point {
	return orient.Match(o, Point{X: p.X, Y: v}, Point{X: v, Y: p.Y})
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Transform returns the SVG translation that moves the origin to p.
func (p Point) Transform() string {
	return Translate(p.X, p.Y)
}

// OffsetAlong returns a vector of length v pointing along o.
func OffsetAlong(o orient.Orientation, v float64) Point {
	return Origin.Along(o, v)
}

// Translate formats an SVG translate transform, e.g. "translate(10,0)".
func Translate(x, y float64) string {
	return "translate(" + FormatNumber(x) + "," + FormatNumber(y) + ")"
}

// FormatNumber formats v with the fewest digits that round-trip.
func FormatNumber(v float64) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Line is a straight segment between two points.
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewLine returns the segment from a to b.
func NewLine(a, b Point) Line {
	return Line{Start: a, End: b}
}

// NewOrientedLine returns the segment starting at origin that extends length
// units along o. Negative lengths extend backwards.
func NewOrientedLine(origin Point, length float64, o orient.Orientation) Line {
	return Line{Start: origin, End: origin.Along(o, origin.Coord(o)+length)}
}

// Length returns the Euclidean length of l.
func (l Line) Length() float64 {
	return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

// Rect is an axis-aligned rectangle defined by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: r.X + r.Width, Y: r.Y + r.Height} }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2} }

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.Width && p.Y <= r.Y+r.Height
}

// Translate returns r moved by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// Transform returns the SVG translation for the top-left corner of r.
func (r Rect) Transform() string {
	return Translate(r.X, r.Y)
}
