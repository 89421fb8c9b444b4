package value

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/cmmoran/valuegen/internal/model"
)

// Instance is a value of a synthesized type, built from a spec without
// generating code. It follows the same construction, equality, hash and
// string rules the rendered implementations do.
type Instance struct {
	spec   *model.GeneratedTypeSpec
	values []any
}

// New constructs an instance from one argument per property, in property
// order. Primitive arguments may be any Go number that fits the property's
// width; they are stored at the canonical width (int64 for long, float32
// for float, rune for char, ...).
func New(spec *model.GeneratedTypeSpec, args ...any) (*Instance, error) {
	if len(args) != len(spec.Properties) {
		return nil, &ConstructionError{
			Type: spec.Name,
			Err:  fmt.Errorf("%w: want %d, got %d", ErrArity, len(spec.Properties), len(args)),
		}
	}

	values := make([]any, len(args))
	for i, p := range spec.Properties {
		v, err := admit(p.Class, args[i])
		if err != nil {
			return nil, &ConstructionError{Type: spec.Name, Property: p.Name, Err: err}
		}
		values[i] = v
	}
	return &Instance{spec: spec, values: values}, nil
}

func admit(c model.Classification, arg any) (any, error) {
	switch c.Kind {
	case model.KindPrimitive:
		if isAbsent(arg) {
			return nil, ErrConstructionViolation
		}
		return normalize(c.Primitive, arg)
	case model.KindNullableObject:
		if isAbsent(arg) {
			return nil, nil
		}
		return arg, nil
	case model.KindOptionalWrapped:
		switch o := arg.(type) {
		case Optional:
			return o, nil
		case *Optional:
			if o == nil {
				return nil, ErrConstructionViolation
			}
			return *o, nil
		case nil:
			return nil, ErrConstructionViolation
		}
		return nil, fmt.Errorf("%w: want value.Optional, got %T", ErrTypeMismatch, arg)
	default:
		if isAbsent(arg) {
			return nil, ErrConstructionViolation
		}
		return arg, nil
	}
}

// normalize converts arg to the canonical Go type of kind.
func normalize(kind model.PrimitiveKind, arg any) (any, error) {
	rv := reflect.ValueOf(arg)
	mismatch := fmt.Errorf("%w: %T is not a %s", ErrTypeMismatch, arg, kind)

	switch kind {
	case model.PrimBoolean:
		if rv.Kind() != reflect.Bool {
			return nil, mismatch
		}
		return rv.Bool(), nil
	case model.PrimString:
		if rv.Kind() != reflect.String {
			return nil, mismatch
		}
		return rv.String(), nil
	case model.PrimFloat, model.PrimDouble:
		var f float64
		switch {
		case rv.CanFloat():
			f = rv.Float()
		case rv.CanInt():
			f = float64(rv.Int())
		case rv.CanUint():
			f = float64(rv.Uint())
		default:
			return nil, mismatch
		}
		if kind == model.PrimFloat {
			if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
				return nil, mismatch
			}
			return float32(f), nil
		}
		return f, nil
	case model.PrimComplex:
		if !rv.CanComplex() {
			return nil, mismatch
		}
		return rv.Complex(), nil
	case model.PrimUint:
		switch {
		case rv.CanUint():
			return rv.Uint(), nil
		case rv.CanInt() && rv.Int() >= 0:
			return uint64(rv.Int()), nil
		}
		return nil, mismatch
	}

	var i int64
	switch {
	case rv.CanInt():
		i = rv.Int()
	case rv.CanUint() && rv.Uint() <= math.MaxInt64:
		i = int64(rv.Uint())
	default:
		if kind == model.PrimChar && rv.Kind() == reflect.String {
			if r := []rune(rv.String()); len(r) == 1 {
				return r[0], nil
			}
		}
		return nil, mismatch
	}

	switch kind {
	case model.PrimByte:
		if i < math.MinInt8 || i > math.MaxInt8 {
			return nil, mismatch
		}
		return int8(i), nil
	case model.PrimShort:
		if i < math.MinInt16 || i > math.MaxInt16 {
			return nil, mismatch
		}
		return int16(i), nil
	case model.PrimInt:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return nil, mismatch
		}
		return int32(i), nil
	case model.PrimChar:
		if i < 0 || i > math.MaxInt32 {
			return nil, mismatch
		}
		return rune(i), nil
	case model.PrimLong:
		return i, nil
	}
	return nil, mismatch
}

// TypeName is the synthesized name of the instance's type.
func (x *Instance) TypeName() string {
	return x.spec.Name
}

// Get returns the value of a property by name.
func (x *Instance) Get(name string) (any, bool) {
	_, i, ok := x.spec.Property(name)
	if !ok {
		return nil, false
	}
	return x.values[i], true
}

// Values returns a copy of the property values in declaration order.
func (x *Instance) Values() []any {
	return append([]any(nil), x.values...)
}

// Equal reports whether both instances are of the same synthesized type
// and every property compares equal under its classification's rule.
func (x *Instance) Equal(o *Instance) bool {
	if x == o {
		return true
	}
	if x == nil || o == nil || !sameType(x.spec, o.spec) || len(x.values) != len(o.values) {
		return false
	}
	for i, step := range x.spec.Equality {
		if !equalStep(step, x.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// sameType matches specs by the declaration they were synthesized from. Two
// packages may each declare a type that synthesizes to the same name.
func sameType(a, b *model.GeneratedTypeSpec) bool {
	if a == b {
		return true
	}
	return a.Name == b.Name &&
		a.Language == b.Language &&
		a.Package == b.Package &&
		a.SourceName() == b.SourceName() &&
		len(a.Properties) == len(b.Properties)
}

func equalStep(step model.EqualityStep, a, b any) bool {
	switch step.Rule {
	case model.EqualValue:
		switch step.Prim {
		case model.PrimFloat:
			fa, ok1 := a.(float32)
			fb, ok2 := b.(float32)
			return ok1 && ok2 && EqualFloat32(fa, fb)
		case model.PrimDouble:
			fa, ok1 := a.(float64)
			fb, ok2 := b.(float64)
			return ok1 && ok2 && EqualFloat64(fa, fb)
		case model.PrimComplex:
			ca, ok1 := a.(complex128)
			cb, ok2 := b.(complex128)
			return ok1 && ok2 && EqualComplex128(ca, cb)
		}
		return a == b
	case model.EqualWrapped:
		oa, ok1 := a.(Optional)
		ob, ok2 := b.(Optional)
		return ok1 && ok2 && oa.Equal(ob)
	default:
		return EqualObject(a, b)
	}
}

// Hash combines every property contribution in declaration order.
func (x *Instance) Hash() uint64 {
	h := Seed
	for i, step := range x.spec.Hash {
		h = Combine(h, hashStep(step, x.values[i]))
	}
	return h
}

// hashStep falls back to HashObject whenever v is not stored at the width
// the step expects.
func hashStep(step model.HashStep, v any) uint64 {
	switch step.Rule {
	case model.HashValue:
		switch x := v.(type) {
		case bool:
			return HashBool(x)
		case float32:
			return HashFloat32(x)
		case float64:
			return HashFloat64(x)
		case rune:
			return HashRune(x)
		case string:
			return HashString(x)
		case uint64:
			return HashUint64(x)
		case complex128:
			return HashComplex128(x)
		case int8, int16, int64:
			return HashInt64(reflect.ValueOf(x).Int())
		}
	case model.HashWrapped:
		if o, ok := v.(Optional); ok {
			return o.HashCode()
		}
	}
	return HashObject(v)
}

// String renders Name(p1=v1, p2=v2, ...).
func (x *Instance) String() string {
	var sb strings.Builder
	sb.WriteString(x.spec.Name)
	sb.WriteByte('(')
	for i, step := range x.spec.Str {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(step.Property)
		sb.WriteByte('=')
		if step.Class.Kind == model.KindPrimitive {
			sb.WriteString(formatPrimitive(step.Class.Primitive, x.values[i]))
		} else {
			sb.WriteString(FormatObject(x.values[i]))
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
