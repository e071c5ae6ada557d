package scale

import (
	"math"
	"slices"
)

// Band maps an ordered set of category keys to evenly spaced bands of a
// numeric range.
//
// Given n keys the range is divided into n steps. Each band is step wide
// less the inner padding; outer padding is added before the first and after
// the last band, and any remaining space is split evenly on both sides.
type Band struct {
	domain       []string
	index        map[string]int
	rng          [2]float64
	paddingInner float64
	paddingOuter float64

	start     float64
	step      float64
	bandwidth float64
}

// NewBand returns a band scale. Padding values are fractions of the step
// and are clamped to [0, 1].
func NewBand(domain []string, rng [2]float64, paddingInner, paddingOuter float64) *Band {
	b := &Band{
		domain:       domain,
		index:        make(map[string]int, len(domain)),
		rng:          rng,
		paddingInner: clamp01(paddingInner),
		paddingOuter: clamp01(paddingOuter),
	}
	for i, k := range domain {
		if _, dup := b.index[k]; !dup {
			b.index[k] = i
		}
	}
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	lo, hi := b.rng[0], b.rng[1]
	b.step = (hi - lo) / math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	b.start = lo + (hi-lo-b.step*(n-b.paddingInner))*0.5
	b.bandwidth = b.step * (1 - b.paddingInner)
}

// Position returns the start of the band for key, or NaN for unknown keys.
func (b *Band) Position(key string) float64 {
	i, ok := b.index[key]
	if !ok {
		return math.NaN()
	}
	return b.start + b.step*float64(i)
}

// Lookup is Position with an explicit found flag.
func (b *Band) Lookup(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the middle of the band for key, or NaN for unknown keys.
func (b *Band) Center(key string) float64 {
	return b.Position(key) + b.bandwidth/2
}

// At returns the key whose step contains position p. Positions outside the
// bands snap to the nearest band. ok is false for an empty domain.
func (b *Band) At(p float64) (key string, ok bool) {
	if len(b.domain) == 0 || b.step == 0 {
		return "", false
	}
	// Shift by half the inner gap so the gap before a band belongs to it.
	i := int(math.Floor((p - b.start + b.step*b.paddingInner/2) / b.step))
	i = min(max(i, 0), len(b.domain)-1)
	return b.domain[i], true
}

// Bandwidth returns the width of each band.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// Step returns the distance between the starts of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Domain returns a copy of the keys in order.
func (b *Band) Domain() []string { return slices.Clone(b.domain) }

// Range returns the output interval.
func (b *Band) Range() [2]float64 { return b.rng }

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(max(v, 0), 1)
}
