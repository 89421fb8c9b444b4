package gogen

import (
	"go/types"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/valuegen/internal/model"
)

var javaBuiltins = map[string]string{
	"boolean":      "bool",
	"Boolean":      "bool",
	"byte":         "int8",
	"Byte":         "int8",
	"short":        "int16",
	"Short":        "int16",
	"int":          "int32",
	"Integer":      "int32",
	"long":         "int64",
	"Long":         "int64",
	"float":        "float32",
	"Float":        "float32",
	"double":       "float64",
	"Double":       "float64",
	"char":         "rune",
	"Character":    "rune",
	"String":       "string",
	"CharSequence": "string",
}

var javaLists = map[string]bool{
	"List": true, "ArrayList": true, "LinkedList": true, "ImmutableList": true,
	"Collection": true, "Iterable": true,
	"Set": true, "HashSet": true, "SortedSet": true, "TreeSet": true, "ImmutableSet": true,
}

var javaMaps = map[string]bool{
	"Map": true, "HashMap": true, "LinkedHashMap": true, "TreeMap": true,
	"SortedMap": true, "ImmutableMap": true,
}

// typeMapper turns declared property types into Go types.
type typeMapper struct {
	lang       string
	typeParams map[string]bool
}

func newTypeMapper(spec *model.GeneratedTypeSpec) typeMapper {
	m := typeMapper{lang: spec.Language, typeParams: map[string]bool{}}
	for _, tp := range spec.TypeParams {
		m.typeParams[tp] = true
	}
	return m
}

// property is the Go type of a property's field. Java nullable values
// that cannot hold nil become pointers; Go declarations are kept as
// written.
func (m typeMapper) property(p model.Property) *jen.Statement {
	switch p.Class.Kind {
	case model.KindOptionalWrapped:
		return jen.Qual(valuePkg, "Optional")
	case model.KindNullableObject:
		if m.lang != model.LangGo && !m.absentable(p.Type) {
			return jen.Op("*").Add(m.goType(p.Type))
		}
	}
	return m.goType(p.Type)
}

func (m typeMapper) goType(t *model.TypeRef) *jen.Statement {
	if t == nil {
		return jen.Any()
	}
	if t.Dims > 0 {
		inner := *t
		inner.Dims--
		return jen.Index().Add(m.goType(&inner))
	}
	if t.IsPtr {
		inner := *t
		inner.IsPtr = false
		return jen.Op("*").Add(m.goType(&inner))
	}
	if m.typeParams[t.Name] {
		return jen.Id(t.Name)
	}
	if t.PkgPath != "" {
		s := jen.Qual(t.PkgPath, t.SimpleName())
		if len(t.Args) > 0 {
			s.Types(m.list(t.Args)...)
		}
		return s
	}
	if m.lang == model.LangGo {
		if t.Name == "map" && len(t.Args) == 2 {
			return jen.Map(m.goType(t.Args[0])).Add(m.goType(t.Args[1]))
		}
		return jen.Id(t.Name)
	}
	return m.javaType(t)
}

func (m typeMapper) javaType(t *model.TypeRef) *jen.Statement {
	name := t.SimpleName()
	if goName, ok := javaBuiltins[name]; ok {
		return jen.Id(goName)
	}
	switch {
	case name == "Optional":
		return jen.Qual(valuePkg, "Optional")
	case javaLists[name] && len(t.Args) <= 1:
		elem := jen.Any()
		if len(t.Args) == 1 {
			elem = m.goType(t.Args[0])
		}
		return jen.Index().Add(elem)
	case javaMaps[name] && len(t.Args) == 2:
		return jen.Map(m.goType(t.Args[0])).Add(m.goType(t.Args[1]))
	}
	return jen.Any()
}

func (m typeMapper) list(ts []*model.TypeRef) []jen.Code {
	out := make([]jen.Code, 0, len(ts))
	for _, t := range ts {
		out = append(out, m.goType(t))
	}
	return out
}

// absentable reports whether the mapped Go type can hold nil.
func (m typeMapper) absentable(t *model.TypeRef) bool {
	if t == nil || t.Dims > 0 || t.IsPtr || m.typeParams[t.Name] {
		return true
	}
	if t.PkgPath != "" {
		return true
	}
	if m.lang == model.LangGo {
		if obj, ok := types.Universe.Lookup(t.Name).(*types.TypeName); ok {
			if b, ok := obj.Type().(*types.Basic); ok {
				return b.Kind() == types.UnsafePointer
			}
		}
		return true
	}
	name := t.SimpleName()
	if _, ok := javaBuiltins[name]; ok {
		return false
	}
	return name != "Optional"
}
