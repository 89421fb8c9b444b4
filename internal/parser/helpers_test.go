package parser

import (
	"github.com/cmmoran/valuegen/internal/model"
)

func ref(name string, args ...*model.TypeRef) *model.TypeRef {
	return &model.TypeRef{Name: name, Args: args}
}

func accessor(name string, ret *model.TypeRef, vis model.Visibility, anns ...string) *model.Member {
	m := &model.Member{
		Kind:       model.MemberMethod,
		Name:       name,
		Returns:    ret,
		Visibility: vis,
		Modifiers:  []string{"abstract"},
	}
	for _, a := range anns {
		m.Annotations = append(m.Annotations, model.Annotation{Name: a, Raw: a})
	}
	return m
}

func concrete(name string, ret *model.TypeRef, params ...model.Param) *model.Member {
	return &model.Member{
		Kind:       model.MemberMethod,
		Name:       name,
		Returns:    ret,
		Params:     params,
		Visibility: model.VisibilityPublic,
		HasBody:    true,
	}
}

func field(name string, t *model.TypeRef) *model.Member {
	return &model.Member{
		Kind:       model.MemberField,
		Name:       name,
		Returns:    t,
		Visibility: model.VisibilityPrivate,
		Modifiers:  []string{"final"},
	}
}

func nested(d *model.TypeDeclaration) *model.Member {
	return &model.Member{Kind: model.MemberNested, Name: d.Name, Nested: d}
}

func autoValue(name string, members ...*model.Member) *model.TypeDeclaration {
	d := &model.TypeDeclaration{
		Name:        name,
		Kind:        model.DeclClass,
		Modifiers:   []string{"public", "abstract"},
		Annotations: []model.Annotation{{Name: "AutoValue", Raw: "AutoValue"}},
		Members:     members,
		Package:     "com.github.johnmurray.mavir",
	}
	for _, m := range members {
		if m.Kind == model.MemberNested {
			m.Nested.Enclosing = d
		}
	}
	return d
}

func enclose(outer *model.TypeDeclaration, members ...*model.Member) *model.TypeDeclaration {
	outer.Members = append(outer.Members, members...)
	for _, m := range members {
		if m.Kind == model.MemberNested {
			m.Nested.Enclosing = outer
		}
	}
	return outer
}

// testClass mirrors the seven property fixture.
func testClass() *model.TypeDeclaration {
	return autoValue("TestClass",
		accessor("name", ref("String"), model.VisibilityPackage),
		accessor("longValue", ref("long"), model.VisibilityPublic),
		accessor("intValue", ref("int"), model.VisibilityProtected),
		accessor("floatValue", ref("float"), model.VisibilityPublic),
		accessor("doubleValue", ref("double"), model.VisibilityPublic),
		accessor("booleanValue", ref("boolean"), model.VisibilityPublic),
		accessor("charValue", ref("char"), model.VisibilityPublic),
		concrete("create", ref("TestClass"),
			model.Param{Name: "name", Type: ref("String")},
			model.Param{Name: "longValue", Type: ref("long")},
			model.Param{Name: "intValue", Type: ref("int")},
			model.Param{Name: "floatValue", Type: ref("float")},
			model.Param{Name: "doubleValue", Type: ref("double")},
			model.Param{Name: "booleanValue", Type: ref("boolean")},
			model.Param{Name: "charValue", Type: ref("char")},
		),
	)
}

func propertyNames(props []model.PropertyMember) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Name
	}
	return out
}
