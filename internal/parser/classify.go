package parser

import (
	"fmt"

	"bitbucket.org/creachadair/stringset"

	"github.com/cmmoran/valuegen/internal/model"
)

// Profile describes the type vocabulary of one source language.
type Profile struct {
	Name       string
	Primitives map[string]model.PrimitiveKind
	// Optionals are the names (simple or qualified) of the optional wrapper.
	Optionals stringset.Set
	// Nullables are the annotation names that mark a property nullable.
	Nullables stringset.Set
}

var JavaProfile = Profile{
	Name: model.LangJava,
	Primitives: map[string]model.PrimitiveKind{
		"boolean": model.PrimBoolean,
		"byte":    model.PrimByte,
		"short":   model.PrimShort,
		"int":     model.PrimInt,
		"long":    model.PrimLong,
		"float":   model.PrimFloat,
		"double":  model.PrimDouble,
		"char":    model.PrimChar,
	},
	Optionals: stringset.New("Optional", "java.util.Optional", "com.google.common.base.Optional"),
	Nullables: stringset.New("Nullable", "CheckForNull"),
}

var GoProfile = Profile{
	Name: model.LangGo,
	Primitives: map[string]model.PrimitiveKind{
		"bool":       model.PrimBoolean,
		"int8":       model.PrimByte,
		"int16":      model.PrimShort,
		"int32":      model.PrimInt,
		"rune":       model.PrimChar,
		"int":        model.PrimLong,
		"int64":      model.PrimLong,
		"float32":    model.PrimFloat,
		"float64":    model.PrimDouble,
		"string":     model.PrimString,
		"byte":       model.PrimUint,
		"uint":       model.PrimUint,
		"uint8":      model.PrimUint,
		"uint16":     model.PrimUint,
		"uint32":     model.PrimUint,
		"uint64":     model.PrimUint,
		"uintptr":    model.PrimUint,
		"complex64":  model.PrimComplex,
		"complex128": model.PrimComplex,
	},
	Optionals: stringset.New("value.Optional", "Optional"),
	Nullables: stringset.New("nullable"),
}

// Classifier maps declared return types onto classifications.
type Classifier struct {
	profile Profile
}

func NewClassifier(p Profile) *Classifier {
	return &Classifier{profile: p}
}

// Classify decides the classification of one property's declared type.
func (c *Classifier) Classify(ret *model.TypeRef, nullable bool) (model.Classification, error) {
	if ret == nil {
		return model.Classification{}, fmt.Errorf("classify: void has no classification")
	}

	if prim, ok := c.primitive(ret); ok {
		if nullable {
			return model.Classification{}, fmt.Errorf("%s: %w", ret, ErrPrimitiveCannotBeAbsent)
		}
		return model.Classification{Kind: model.KindPrimitive, Primitive: prim}, nil
	}

	// The wrapper already expresses absence, so a nullable annotation on it
	// adds nothing.
	if c.isOptional(ret) {
		var inner *model.TypeRef
		if len(ret.Args) > 0 {
			inner = ret.Args[0]
		} else {
			inner = &model.TypeRef{Name: "Object"}
		}
		return model.Classification{Kind: model.KindOptionalWrapped, Inner: inner}, nil
	}

	if nullable {
		return model.Classification{Kind: model.KindNullableObject}, nil
	}
	return model.Classification{Kind: model.KindPlainObject}, nil
}

// IsNullableAnnotation reports whether an annotation name marks absence.
func (c *Classifier) IsNullableAnnotation(a model.Annotation) bool {
	return c.profile.Nullables.Contains(a.Name) || c.profile.Nullables.Contains(a.Raw)
}

func (c *Classifier) primitive(t *model.TypeRef) (model.PrimitiveKind, bool) {
	if t.Dims > 0 || t.IsPtr || len(t.Args) > 0 || t.PkgPath != "" {
		return model.PrimNone, false
	}
	k, ok := c.profile.Primitives[t.Name]
	return k, ok
}

func (c *Classifier) isOptional(t *model.TypeRef) bool {
	if t.Dims > 0 || t.IsPtr {
		return false
	}
	// Go types resolved to an import path only match the runtime wrapper.
	if t.PkgPath != "" {
		return t.PkgPath == ValuePkgPath && t.SimpleName() == "Optional"
	}
	return c.profile.Optionals.Contains(t.Name)
}

// ValuePkgPath is the import path of the runtime package generated Go code
// depends on.
const ValuePkgPath = "github.com/cmmoran/valuegen/pkg/value"
