package selector

import (
	"fmt"
	"reflect"
)

// Field binds a selector to a named field of a record built by [Struct].
type Field[S any] struct {
	name string
	typ  reflect.Type
	get  func(S) any
}

// FieldOf creates a [Field] that fills the struct field called name with the
// output of sel.
func FieldOf[S, T any](name string, sel Selector[S, T]) Field[S] {
	return Field[S]{
		name: name,
		typ:  reflect.TypeFor[T](),
		get:  func(s S) any { return sel(s) },
	}
}

// Struct builds a record of type R from per-field selectors. The record is
// recomputed only when at least one field selector produced a new value, so
// the returned value is stable across calls with unchanged dependencies.
//
// Struct panics when R is not a struct type, when a field does not exist or
// is unexported, when a selector's type is not assignable to its field, or
// when a field is bound twice. These are wiring defects and surface when the
// graph is built, not when it is evaluated.
func Struct[S, R any](fields ...Field[S]) Selector[S, R] {
	rt := reflect.TypeFor[R]()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("selector: Struct target %s is not a struct", rt))
	}

	index := make([]int, len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		sf, ok := rt.FieldByName(f.name)
		switch {
		case !ok:
			panic(fmt.Sprintf("selector: %s has no field %q", rt, f.name))
		case !sf.IsExported():
			panic(fmt.Sprintf("selector: field %s.%s is unexported", rt, f.name))
		case len(sf.Index) != 1:
			panic(fmt.Sprintf("selector: field %s.%s is promoted from an embedded struct", rt, f.name))
		case !f.typ.AssignableTo(sf.Type):
			panic(fmt.Sprintf("selector: cannot assign %s to field %s.%s of type %s", f.typ, rt, f.name, sf.Type))
		case seen[f.name]:
			panic(fmt.Sprintf("selector: field %s.%s bound twice", rt, f.name))
		}
		seen[f.name] = true
		index[i] = sf.Index[0]
	}

	var m memo[R]
	return func(s S) R {
		values := make([]any, len(fields))
		for i, f := range fields {
			values[i] = f.get(s)
		}
		return m.get(values, func() R {
			var r R
			rv := reflect.ValueOf(&r).Elem()
			for i, v := range values {
				fv := rv.Field(index[i])
				if v == nil {
					fv.Set(reflect.Zero(fv.Type()))
					continue
				}
				fv.Set(reflect.ValueOf(v))
			}
			return r
		})
	}
}
