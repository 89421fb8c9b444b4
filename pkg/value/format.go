package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cmmoran/valuegen/internal/model"
)

// NullLiteral renders an absent value.
const NullLiteral = model.NullLiteral

// FormatFloat64 renders f the way Double.toString does: plain decimal
// between 1e-3 and 1e7, computerized scientific notation otherwise, and
// always at least one fractional digit.
func FormatFloat64(f float64) string {
	return formatFloat(f, 64)
}

// FormatFloat32 is FormatFloat64 for single precision.
func FormatFloat32(f float32) string {
	return formatFloat(float64(f), 32)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(f)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(f, 'E', -1, bits)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mantissa + "E" + strconv.Itoa(e)
}

func FormatRune(r rune) string {
	return string(r)
}

// FormatObject renders a reference value; absent values render as
// NullLiteral.
func FormatObject(v any) string {
	if isAbsent(v) {
		return NullLiteral
	}
	switch x := v.(type) {
	case string:
		return x
	case float32:
		return FormatFloat32(x)
	case float64:
		return FormatFloat64(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr {
		return FormatObject(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// formatPrimitive renders an already normalized primitive.
func formatPrimitive(kind model.PrimitiveKind, v any) string {
	switch kind {
	case model.PrimFloat:
		return FormatFloat32(v.(float32))
	case model.PrimDouble:
		return FormatFloat64(v.(float64))
	case model.PrimChar:
		return FormatRune(v.(rune))
	case model.PrimBoolean:
		return strconv.FormatBool(v.(bool))
	}
	return fmt.Sprint(v)
}
