package value

// Optional is the explicit absence wrapper. The zero value is empty.
type Optional struct {
	v  any
	ok bool
}

// Of wraps v. A nil v yields an empty Optional.
func Of(v any) Optional {
	if isAbsent(v) {
		return Optional{}
	}
	return Optional{v: v, ok: true}
}

// OfNullable is Of; it exists for callers mirroring Optional.ofNullable.
func OfNullable(v any) Optional {
	return Of(v)
}

// Empty returns the empty Optional.
func Empty() Optional {
	return Optional{}
}

func (o Optional) IsPresent() bool {
	return o.ok
}

// Get returns the wrapped value and whether one is present.
func (o Optional) Get() (any, bool) {
	return o.v, o.ok
}

func (o Optional) OrElse(other any) any {
	if o.ok {
		return o.v
	}
	return other
}

// Equal compares wrapper content; two empty wrappers are equal.
func (o Optional) Equal(other Optional) bool {
	if o.ok != other.ok {
		return false
	}
	if !o.ok {
		return true
	}
	return EqualObject(o.v, other.v)
}

// HashCode is consistent with Equal.
func (o Optional) HashCode() uint64 {
	if !o.ok {
		return emptyOptionalHash
	}
	return HashObject(o.v)
}

func (o Optional) String() string {
	if !o.ok {
		return "Optional.empty"
	}
	return "Optional[" + FormatObject(o.v) + "]"
}
