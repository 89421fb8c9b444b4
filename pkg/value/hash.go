package value

import (
	"bytes"
	"math"
	"reflect"
	"slices"

	"github.com/minio/highwayhash"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cmmoran/valuegen/internal/model"
)

// Hasher lets a property type supply its own hash. It must agree with the
// type's Equal method.
type Hasher interface {
	HashCode() uint64
}

const (
	Seed       = model.HashSeed
	Multiplier = model.HashMultiplier
	// NullHash is what an absent nullable property contributes.
	NullHash = model.NullSentinel

	// presentBit is set on every present object contribution so that none
	// of them collides with NullHash.
	presentBit        uint64 = 1 << 63
	emptyOptionalHash uint64 = 0x9e3779b97f4a7c15
)

// hashKey is a fixed HighwayHash key; hashes must be stable across runs.
var hashKey = []byte("valuegen/pkg/value:highwayhash:k")

// Combine folds one property contribution into the running hash.
func Combine(h, part uint64) uint64 {
	return h*Multiplier ^ part
}

func HashBool(b bool) uint64 {
	if b {
		return 1231
	}
	return 1237
}

func HashInt64(i int64) uint64 {
	return uint64(i)
}

func HashUint64(u uint64) uint64 {
	return u
}

func HashRune(r rune) uint64 {
	return uint64(r)
}

// HashFloat32 hashes the bit pattern, matching EqualFloat32.
func HashFloat32(f float32) uint64 {
	return uint64(math.Float32bits(f))
}

// HashFloat64 hashes the bit pattern, matching EqualFloat64.
func HashFloat64(f float64) uint64 {
	return math.Float64bits(f)
}

func HashComplex128(c complex128) uint64 {
	return Combine(HashFloat64(real(c)), HashFloat64(imag(c)))
}

func HashString(s string) uint64 {
	return highwayhash.Sum64([]byte(s), hashKey)
}

// HashObject hashes a reference value consistently with EqualObject. Absent
// values hash to NullHash, present ones never do.
func HashObject(v any) uint64 {
	if isAbsent(v) {
		return NullHash
	}
	return presentBit | hashPresent(v)
}

func hashPresent(v any) uint64 {
	switch x := v.(type) {
	case Hasher:
		return x.HashCode()
	case string:
		return HashString(x)
	case bool:
		return HashBool(x)
	case float32:
		return HashFloat32(x)
	case float64:
		return HashFloat64(x)
	case complex64:
		return HashComplex128(complex128(x))
	case complex128:
		return HashComplex128(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if _, ok := equalMethod(rv, rv.Type()); !ok {
			return HashObject(rv.Elem().Interface())
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return HashInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return HashUint64(rv.Uint())
	case reflect.Float32:
		return HashFloat32(float32(rv.Float()))
	case reflect.Float64:
		return HashFloat64(rv.Float())
	}

	// Types comparing through their own Equal method give no guarantee a
	// structural encoding agrees with it; only the type is safe to hash.
	if _, ok := equalMethod(rv, rv.Type()); ok {
		return HashString(rv.Type().String())
	}

	var buf bytes.Buffer
	if err := encodeCanonical(msgpack.NewEncoder(&buf), rv); err != nil {
		return HashString(rv.Type().String())
	}
	return Combine(HashString(rv.Type().String()), highwayhash.Sum64(buf.Bytes(), hashKey))
}

// encodeCanonical writes v in a form that is identical for any two values
// deepEqual accepts. Floats keep their bit pattern and map entries are
// digested and sorted, so iteration order never leaks into the hash.
func encodeCanonical(enc *msgpack.Encoder, v reflect.Value) error {
	if !v.IsValid() {
		return enc.EncodeNil()
	}

	switch v.Kind() {
	case reflect.Bool:
		return enc.EncodeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return enc.EncodeInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return enc.EncodeUint(v.Uint())
	case reflect.Float32:
		return enc.EncodeFloat32(float32(v.Float()))
	case reflect.Float64:
		return enc.EncodeFloat64(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		if err := enc.EncodeFloat64(real(c)); err != nil {
			return err
		}
		return enc.EncodeFloat64(imag(c))
	case reflect.String:
		return enc.EncodeString(v.String())
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return enc.EncodeNil()
		}
		return encodeCanonical(enc, v.Elem())
	case reflect.Slice:
		if v.IsNil() {
			return enc.EncodeNil()
		}
		fallthrough
	case reflect.Array:
		if err := enc.EncodeArrayLen(v.Len()); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := encodeCanonical(enc, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		if err := enc.EncodeArrayLen(v.NumField()); err != nil {
			return err
		}
		for i := 0; i < v.NumField(); i++ {
			if err := encodeCanonical(enc, v.Field(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if v.IsNil() {
			return enc.EncodeNil()
		}
		digests, err := entryDigests(v)
		if err != nil {
			return err
		}
		if err := enc.EncodeMapLen(len(digests)); err != nil {
			return err
		}
		for _, d := range digests {
			if err := enc.EncodeUint(d); err != nil {
				return err
			}
		}
		return nil
	case reflect.Func:
		return enc.EncodeBool(v.IsNil())
	}
	return enc.EncodeUint(uint64(v.Pointer()))
}

func entryDigests(m reflect.Value) ([]uint64, error) {
	digests := make([]uint64, 0, m.Len())
	var buf bytes.Buffer
	for it := m.MapRange(); it.Next(); {
		buf.Reset()
		enc := msgpack.NewEncoder(&buf)
		if err := encodeCanonical(enc, it.Key()); err != nil {
			return nil, err
		}
		if err := encodeCanonical(enc, it.Value()); err != nil {
			return nil, err
		}
		digests = append(digests, highwayhash.Sum64(buf.Bytes(), hashKey))
	}
	slices.Sort(digests)
	return digests, nil
}
