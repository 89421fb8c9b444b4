package value

import (
	"math"
	"reflect"
)

// EqualFloat32 compares bit patterns: NaN equals NaN and 0.0 differs from
// -0.0, which keeps equality reflexive and consistent with HashFloat32.
func EqualFloat32(a, b float32) bool {
	return math.Float32bits(a) == math.Float32bits(b)
}

func EqualFloat64(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

func EqualComplex128(a, b complex128) bool {
	return EqualFloat64(real(a), real(b)) && EqualFloat64(imag(a), imag(b))
}

// EqualObject compares two reference values. Two absent values are equal;
// an absent and a present value never are. Types with an Equal(T) bool
// method are compared with it.
func EqualObject(a, b any) bool {
	aAbsent, bAbsent := isAbsent(a), isAbsent(b)
	if aAbsent || bAbsent {
		return aAbsent == bAbsent
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if m, ok := equalMethod(av, bv.Type()); ok {
		return m.Call([]reflect.Value{bv})[0].Bool()
	}
	if av.Type() != bv.Type() {
		return false
	}

	switch av.Kind() {
	case reflect.Ptr:
		return EqualObject(av.Elem().Interface(), bv.Elem().Interface())
	case reflect.Float32, reflect.Float64:
		return EqualFloat64(av.Float(), bv.Float())
	case reflect.Complex64, reflect.Complex128:
		return EqualComplex128(av.Complex(), bv.Complex())
	}
	return deepEqual(av, bv)
}

// deepEqual walks composite values the way reflect.DeepEqual does, except
// that floats compare by bit pattern at every depth. That is the rule the
// msgpack encoding behind HashObject follows too.
func deepEqual(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Float32:
		return EqualFloat32(float32(a.Float()), float32(b.Float()))
	case reflect.Float64:
		return EqualFloat64(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		return EqualComplex128(a.Complex(), b.Complex())
	case reflect.Ptr:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		if a.Pointer() == b.Pointer() {
			return true
		}
		return deepEqual(a.Elem(), b.Elem())
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return deepEqual(a.Elem(), b.Elem())
	case reflect.Slice:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		fallthrough
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !deepEqual(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !deepEqual(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.IsNil() != b.IsNil() || a.Len() != b.Len() {
			return false
		}
		return mapEqual(a, b)
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	}
	// Channels and unsafe pointers compare by identity.
	return a.Pointer() == b.Pointer()
}

// mapEqual pairs up entries of two maps of equal length. Keys holding floats
// are matched by bit pattern, since map lookup would merge 0.0 and -0.0 and
// never find NaN.
func mapEqual(a, b reflect.Value) bool {
	if !holdsFloat(a.Type().Key()) {
		it := a.MapRange()
		for it.Next() {
			bv := b.MapIndex(it.Key())
			if !bv.IsValid() || !deepEqual(it.Value(), bv) {
				return false
			}
		}
		return true
	}

	type entry struct {
		key, val reflect.Value
		used     bool
	}
	entries := make([]entry, 0, b.Len())
	for bi := b.MapRange(); bi.Next(); {
		entries = append(entries, entry{key: bi.Key(), val: bi.Value()})
	}
outer:
	for ai := a.MapRange(); ai.Next(); {
		for j := range entries {
			e := &entries[j]
			if e.used || !deepEqual(ai.Key(), e.key) || !deepEqual(ai.Value(), e.val) {
				continue
			}
			e.used = true
			continue outer
		}
		return false
	}
	return true
}

func holdsFloat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128, reflect.Interface:
		return true
	case reflect.Array:
		return holdsFloat(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if holdsFloat(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// equalMethod finds an Equal method on v accepting arg and returning bool.
func equalMethod(v reflect.Value, arg reflect.Type) (reflect.Value, bool) {
	m := v.MethodByName("Equal")
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	t := m.Type()
	if t.NumIn() != 1 || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		return reflect.Value{}, false
	}
	if !arg.AssignableTo(t.In(0)) {
		return reflect.Value{}, false
	}
	return m, true
}

// IsAbsent treats untyped nil and nil pointers, maps, slices, channels,
// functions and interfaces as absent.
func IsAbsent(v any) bool {
	return isAbsent(v)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
