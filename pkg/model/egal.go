package model

import (
	"math"
	"reflect"
)

// Egal reports whether two attribute values are the same for change detection.
//
// Values of different dynamic types are never egal. Floats follow SameValue rules: NaN is
// egal to NaN and +0 is not egal to -0. Pointers, channels and funcs compare by identity
// (funcs only when both are nil). Maps, slices, arrays and structs compare element-wise,
// with a nil and an empty map or slice of the same type treated as egal. Self-referencing
// containers are compared once per pair, like reflect.DeepEqual does.
func Egal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return egal(reflect.ValueOf(a), reflect.ValueOf(b), make(map[visit]bool))
}

// visit is a pair of containers already under comparison.
type visit struct {
	a, b uintptr
	typ  reflect.Type
}

func seen(a, b reflect.Value, visited map[visit]bool) bool {
	v := visit{a.Pointer(), b.Pointer(), a.Type()}
	if visited[v] {
		return true
	}
	visited[v] = true
	return false
}

func egal(a, b reflect.Value, visited map[visit]bool) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return sameFloat(real(ca), real(cb)) && sameFloat(imag(ca), imag(cb))
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return egal(a.Elem(), b.Elem(), visited)
	case reflect.Slice:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() > 0 && a.Pointer() == b.Pointer() {
			return true
		}
		if seen(a, b, visited) {
			return true
		}
		return egalElems(a, b, visited)
	case reflect.Array:
		return egalElems(a, b, visited)
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		if a.Len() > 0 && a.Pointer() == b.Pointer() {
			return true
		}
		if seen(a, b, visited) {
			return true
		}
		iter := a.MapRange()
		for iter.Next() {
			other := b.MapIndex(iter.Key())
			if !other.IsValid() || !egal(iter.Value(), other, visited) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := range a.NumField() {
			if !egal(a.Field(i), b.Field(i), visited) {
				return false
			}
		}
		return true
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.String:
		return a.String() == b.String()
	}
	return false
}

func egalElems(a, b reflect.Value, visited map[visit]bool) bool {
	for i := range a.Len() {
		if !egal(a.Index(i), b.Index(i), visited) {
			return false
		}
	}
	return true
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}
