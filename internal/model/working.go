package model

import (
	"strings"
)

type ClassKind int

const (
	KindInvalid         ClassKind = iota
	KindPrimitive                 // boolean, int, long, ...
	KindPlainObject               // reference, never absent
	KindNullableObject            // reference, absence allowed
	KindOptionalWrapped           // absence is an empty wrapper
)

func (k ClassKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindPlainObject:
		return "PlainObject"
	case KindNullableObject:
		return "NullableObject"
	case KindOptionalWrapped:
		return "OptionalWrapped"
	default:
		return "Invalid"
	}
}

type PrimitiveKind int

const (
	PrimNone PrimitiveKind = iota
	PrimBoolean
	PrimByte
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimChar
	// Go value types with no absent state.
	PrimString
	PrimUint
	PrimComplex
)

func (p PrimitiveKind) String() string {
	switch p {
	case PrimBoolean:
		return "boolean"
	case PrimByte:
		return "byte"
	case PrimShort:
		return "short"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	case PrimChar:
		return "char"
	case PrimString:
		return "string"
	case PrimUint:
		return "uint"
	case PrimComplex:
		return "complex"
	default:
		return "none"
	}
}

type Classification struct {
	Kind      ClassKind
	Primitive PrimitiveKind // only valid when KindPrimitive
	Inner     *TypeRef      // only valid when KindOptionalWrapped
}

func (c Classification) String() string {
	switch c.Kind {
	case KindPrimitive:
		return "Primitive(" + c.Primitive.String() + ")"
	case KindOptionalWrapped:
		return "OptionalWrapped(" + c.Inner.String() + ")"
	default:
		return c.Kind.String()
	}
}

// Absentable reports whether a value of this classification may be absent
// at all (either as null or as an empty wrapper).
func (c Classification) Absentable() bool {
	return c.Kind == KindNullableObject || c.Kind == KindOptionalWrapped
}

type PropertyMember struct {
	Name       string
	Type       *TypeRef
	Visibility Visibility
	Nullable   bool
	Index      int // position among the declaration's properties
	Doc        string
	Pos        Position
}

type Property struct {
	PropertyMember
	Class Classification
}

// Field is the storage slot synthesized for a property.
type Field struct {
	Name     string
	Type     *TypeRef
	Class    Classification
	Accessor Visibility // never more restrictive than the declared accessor
}

type ConstructorParam struct {
	Name     string
	Type     *TypeRef
	Required bool // absent values are rejected at construction
}

// EqualityRule says how one property participates in Equal.
type EqualityRule int

const (
	EqualValue    EqualityRule = iota // primitive value (floats by bit pattern)
	EqualObject                       // object equality, never absent
	EqualNullable                     // absent == absent, absent != present
	EqualWrapped                      // wrapper content, empty == empty
)

// HashRule says how one property contributes to Hash.
type HashRule int

const (
	HashValue    HashRule = iota
	HashObject
	HashNullable // absent contributes NullSentinel
	HashWrapped
)

// Hash combination constants shared by every renderer and the runtime.
const (
	HashSeed       uint64 = 1
	HashMultiplier uint64 = 1000003
	NullSentinel   uint64 = 0
	NullLiteral           = "null"
)

type EqualityStep struct {
	Property string
	Rule     EqualityRule
	Prim     PrimitiveKind
}

type HashStep struct {
	Property string
	Rule     HashRule
	Prim     PrimitiveKind
}

type StringStep struct {
	Property string
	Class    Classification
}

type Factory struct {
	Method string
	Static bool
	Params []Param
	// PropertyIndex[i] is the property index fed by factory parameter i.
	PropertyIndex []int
}

// Source languages a declaration can be read from.
const (
	LangJava = "java"
	LangGo   = "go"
)

type GeneratedTypeSpec struct {
	Name       string   // synthesized name, "GeneratedOuter_Nested"
	Source     []string // declaring chain, ["Outer", "Nested"]
	Language   string   // profile the declaration was read with, "java" or "go"
	Kind       DeclKind // kind of the source declaration
	Package    string
	Imports    []string
	TypeParams []string
	File       string

	Properties  []Property
	Fields      []Field
	Constructor []ConstructorParam
	Equality    []EqualityStep
	Hash        []HashStep
	Str         []StringStep
	Factory     *Factory
}

// SourceName is the dotted name of the declaration the spec implements.
func (s *GeneratedTypeSpec) SourceName() string {
	return strings.Join(s.Source, ".")
}

// Property looks a property up by name.
func (s *GeneratedTypeSpec) Property(name string) (Property, int, bool) {
	for i, p := range s.Properties {
		if p.Name == name {
			return p, i, true
		}
	}
	return Property{}, -1, false
}
