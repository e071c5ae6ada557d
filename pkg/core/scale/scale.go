// Package scale implements the two chart scales and binds them to the
// direction they are drawn along.
//
// [Band] maps resource keys to lanes; [Time] maps instants to a continuous
// offset. Both satisfy [Scale], which is all the axis geometry needs to
// know. [Oriented] pairs a scale with its [orient.Orientation].
package scale

import (
	"math"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/core/geom"
	"github.com/matzehuels/rxtimeline/pkg/core/orient"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Scale maps domain values of type V to positions in a numeric range.
type Scale[V any] interface {
	Position(v V) float64
	Range() [2]float64
}

var (
	_ Scale[string]    = (*Band)(nil)
	_ Scale[time.Time] = (*Time)(nil)
)

// Oriented is a scale together with the orientation it is drawn along.
type Oriented[V any] struct {
	Scale       Scale[V]
	Orientation orient.Orientation
}

// Orient binds s to o.
func Orient[V any](s Scale[V], o orient.Orientation) Oriented[V] {
	return Oriented[V]{Scale: s, Orientation: o}
}

// RangeMax returns the upper bound of the range.
func (o Oriented[V]) RangeMax() float64 {
	return o.Scale.Range()[1]
}

// Degenerate reports whether the range cannot hold any geometry.
func (o Oriented[V]) Degenerate() bool {
	return CheckRange(o.Scale.Range()) != nil
}

// Point places v on origin along the scale's orientation.
func (o Oriented[V]) Point(origin geom.Point, v V) geom.Point {
	return origin.Along(o.Orientation, o.Scale.Position(v))
}

// CheckRange returns an [errors.ErrCodeDegenerateScale] error when r is not
// a finite interval of positive length, as happens before the view has been
// sized.
func CheckRange(r [2]float64) error {
	for _, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeDegenerateScale, "scale range %v is not finite", r)
		}
	}
	if r[1] <= r[0] {
		return errors.New(errors.ErrCodeDegenerateScale, "scale range [%g, %g] is empty", r[0], r[1])
	}
	return nil
}
