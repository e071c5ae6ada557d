package selector

import "sync"

// Selector derives a value of type T from a snapshot of type S.
type Selector[S, T any] func(S) T

// memo is a single-slot cache keyed on the outputs of input selectors.
type memo[T any] struct {
	mu     sync.Mutex
	valid  bool
	inputs []any
	result T
}

// get returns the cached result when inputs match the previous call and
// otherwise runs compute. Input selectors must be evaluated by the caller
// before get is entered so that the lock is never held across other selectors.
func (m *memo[T]) get(inputs []any, compute func() T) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && sameAll(m.inputs, inputs) {
		return m.result
	}
	m.result = compute()
	m.inputs = inputs
	m.valid = true
	return m.result
}

// Map derives a value from one input selector.
func Map[S, A, R any](a Selector[S, A], combine func(A) R) Selector[S, R] {
	var m memo[R]
	return func(s S) R {
		av := a(s)
		return m.get([]any{av}, func() R { return combine(av) })
	}
}

// Map2 derives a value from two input selectors.
func Map2[S, A, B, R any](a Selector[S, A], b Selector[S, B], combine func(A, B) R) Selector[S, R] {
	var m memo[R]
	return func(s S) R {
		av, bv := a(s), b(s)
		return m.get([]any{av, bv}, func() R { return combine(av, bv) })
	}
}

// Map3 derives a value from three input selectors.
func Map3[S, A, B, C, R any](a Selector[S, A], b Selector[S, B], c Selector[S, C], combine func(A, B, C) R) Selector[S, R] {
	var m memo[R]
	return func(s S) R {
		av, bv, cv := a(s), b(s), c(s)
		return m.get([]any{av, bv, cv}, func() R { return combine(av, bv, cv) })
	}
}

// Map4 derives a value from four input selectors. Combines needing more
// inputs should take a parameter struct assembled with [Struct].
func Map4[S, A, B, C, D, R any](a Selector[S, A], b Selector[S, B], c Selector[S, C], d Selector[S, D], combine func(A, B, C, D) R) Selector[S, R] {
	var m memo[R]
	return func(s S) R {
		av, bv, cv, dv := a(s), b(s), c(s), d(s)
		return m.get([]any{av, bv, cv, dv}, func() R { return combine(av, bv, cv, dv) })
	}
}

// Const returns a selector that ignores the snapshot and always yields v.
func Const[S, T any](v T) Selector[S, T] {
	return func(S) T { return v }
}

// Slice projects a part of the snapshot. When the projection is equal to the
// previous one (see [Same]) the previously returned value is handed out again.
func Slice[S, T any](project func(S) T) Selector[S, T] {
	var m memo[T]
	return func(s S) T {
		v := project(s)
		return m.get([]any{v}, func() T { return v })
	}
}

// Switch evaluates the discriminant and then exactly one branch selector.
// branch must return selectors built ahead of time; building new selectors
// inside branch would discard their caches on every call.
func Switch[S, K, T any](disc Selector[S, K], branch func(K) Selector[S, T]) Selector[S, T] {
	return func(s S) T {
		return branch(disc(s))(s)
	}
}
