// Package orient defines the two discriminants the chart geometry is generic
// over: the layout [Orientation] and the logical [AxisType].
//
// Both are two-valued and closed under Flip. Code that depends on either
// value dispatches through [Match], [MatchAxis], or the case records
// [ByOrientation] and [ByAxis] so that every variant is handled in one place.
package orient

import (
	"fmt"
	"strings"

	"github.com/matzehuels/rxtimeline/pkg/core/selector"
)

// Orientation is the direction along which an axis runs.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Flip returns the perpendicular orientation.
func (o Orientation) Flip() Orientation {
	return Match(o, Horizontal, Vertical)
}

// Valid reports whether o is one of the declared orientations.
func (o Orientation) Valid() bool {
	return o == Vertical || o == Horizontal
}

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// ParseOrientation parses "Vertical" or "Horizontal", case-insensitively.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("invalid orientation %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Match returns vertical or horizontal depending on o. An undeclared
// orientation is a programming error and panics.
func Match[T any](o Orientation, vertical, horizontal T) T {
	switch o {
	case Vertical:
		return vertical
	case Horizontal:
		return horizontal
	}
	panic(fmt.Sprintf("orient: invalid orientation %d", int(o)))
}

// AxisType identifies one of the two logical axes of the chart.
type AxisType int

const (
	Time AxisType = iota
	Resources
)

// Flip returns the other axis type.
func (a AxisType) Flip() AxisType {
	return MatchAxis(a, Resources, Time)
}

func (a AxisType) String() string {
	switch a {
	case Time:
		return "Time"
	case Resources:
		return "Resources"
	}
	return fmt.Sprintf("AxisType(%d)", int(a))
}

// MatchAxis returns time or resources depending on a.
func MatchAxis[T any](a AxisType, time, resources T) T {
	switch a {
	case Time:
		return time
	case Resources:
		return resources
	}
	panic(fmt.Sprintf("orient: invalid axis type %d", int(a)))
}

// ByOrientation holds one value per orientation.
type ByOrientation[T any] struct {
	Vertical   T
	Horizontal T
}

// Get returns the value for o.
func (b ByOrientation[T]) Get(o Orientation) T {
	return Match(o, b.Vertical, b.Horizontal)
}

// ByAxis holds one value per axis type.
type ByAxis[T any] struct {
	Time      T
	Resources T
}

// Get returns the value for a.
func (b ByAxis[T]) Get(a AxisType) T {
	return MatchAxis(a, b.Time, b.Resources)
}

// SelectByOrientation dispatches to the case selector matching the
// orientation produced by disc.
func SelectByOrientation[S, T any](disc selector.Selector[S, Orientation], cases ByOrientation[selector.Selector[S, T]]) selector.Selector[S, T] {
	return selector.Switch(disc, cases.Get)
}

// SelectByAxis dispatches to the case selector matching the axis type
// produced by disc.
func SelectByAxis[S, T any](disc selector.Selector[S, AxisType], cases ByAxis[selector.Selector[S, T]]) selector.Selector[S, T] {
	return selector.Switch(disc, cases.Get)
}
