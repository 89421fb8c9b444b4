package parser

import (
	"github.com/cmmoran/valuegen/internal/model"
)

// Synthesize derives the generated implementation of one declaration from
// its ordered, classified properties.
func Synthesize(name string, props []model.Property) model.GeneratedTypeSpec {
	spec := model.GeneratedTypeSpec{
		Name:        name,
		Properties:  append([]model.Property(nil), props...),
		Fields:      make([]model.Field, 0, len(props)),
		Constructor: make([]model.ConstructorParam, 0, len(props)),
		Equality:    make([]model.EqualityStep, 0, len(props)),
		Hash:        make([]model.HashStep, 0, len(props)),
		Str:         make([]model.StringStep, 0, len(props)),
	}

	for _, p := range props {
		spec.Fields = append(spec.Fields, model.Field{
			Name:     p.Name,
			Type:     p.Type,
			Class:    p.Class,
			Accessor: p.Visibility,
		})

		spec.Constructor = append(spec.Constructor, model.ConstructorParam{
			Name: p.Name,
			Type: p.Type,
			// An empty wrapper is a value; a null wrapper is not.
			Required: p.Class.Kind == model.KindPlainObject || p.Class.Kind == model.KindOptionalWrapped,
		})

		eq := model.EqualityStep{Property: p.Name, Prim: p.Class.Primitive}
		h := model.HashStep{Property: p.Name, Prim: p.Class.Primitive}
		switch p.Class.Kind {
		case model.KindPrimitive:
			eq.Rule, h.Rule = model.EqualValue, model.HashValue
		case model.KindNullableObject:
			eq.Rule, h.Rule = model.EqualNullable, model.HashNullable
		case model.KindOptionalWrapped:
			eq.Rule, h.Rule = model.EqualWrapped, model.HashWrapped
		default:
			eq.Rule, h.Rule = model.EqualObject, model.HashObject
		}
		spec.Equality = append(spec.Equality, eq)
		spec.Hash = append(spec.Hash, h)

		spec.Str = append(spec.Str, model.StringStep{Property: p.Name, Class: p.Class})
	}

	return spec
}
