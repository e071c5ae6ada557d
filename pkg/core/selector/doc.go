// Package selector provides memoized combinators for deriving values from an
// immutable state snapshot.
//
// A [Selector] is a plain function from a snapshot S to a derived value T.
// Combinators such as [Map], [Map2] and [Struct] wrap a pure combine function
// with a single-slot cache: the outputs of the input selectors are compared
// with the previous call, and the combine function only runs when one of them
// changed. Unchanged inputs therefore yield the very same result value, which
// lets downstream selectors short-circuit in turn.
//
// # Equality
//
// Inputs are compared with [Same]: scalars by value, pointers, maps and slices
// by address (and length), structs and arrays field by field using the same
// rules. Function values never compare equal, so combine functions should
// return data or small interface values rather than closures.
//
// # Building a graph
//
//	type snapshot struct{ width, height float64 }
//
//	width := selector.Slice(func(s *snapshot) float64 { return s.width })
//	height := selector.Slice(func(s *snapshot) float64 { return s.height })
//	area := selector.Map2(width, height, func(w, h float64) float64 { return w * h })
//
// Caches belong to the selector instance that created them. Build one graph
// per independent consumer instead of sharing package-level selectors.
//
// # Discriminants
//
// [Switch] evaluates exactly one branch selector chosen by a discriminant
// selector. The orient package layers exhaustive two-variant case records on
// top of it.
package selector
