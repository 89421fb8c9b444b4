package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/model"
)

func TestResolveName(t *testing.T) {
	outer := &model.TypeDeclaration{Name: "OuterClassWithNestedAutoValue"}
	nestedA := autoValue("NestedTestClass", accessor("name", ref("String"), model.VisibilityPackage))
	deeper := &model.TypeDeclaration{Name: "Holder"}
	nestedB := autoValue("NestedTestClass", accessor("name", ref("String"), model.VisibilityPackage))
	enclose(outer, nested(nestedA), nested(deeper))
	enclose(deeper, nested(nestedB))

	require.Equal(t, "GeneratedTestClass", ResolveName(testClass(), DefaultNaming))
	require.Equal(t, "GeneratedOuterClassWithNestedAutoValue_NestedTestClass", ResolveName(nestedA, DefaultNaming))
	require.Equal(t, "AutoValue_OuterClassWithNestedAutoValue_NestedTestClass", ResolveName(nestedA, AutoValueNaming))

	// Same local name, different chains.
	require.NotEqual(t, ResolveName(nestedA, DefaultNaming), ResolveName(nestedB, DefaultNaming))
	require.Equal(t, "GeneratedOuterClassWithNestedAutoValue_Holder_NestedTestClass", ResolveName(nestedB, DefaultNaming))

	// Sibling members moving around does not change the name.
	before := ResolveName(nestedA, DefaultNaming)
	outer.Members = append([]*model.Member{field("value", ref("String"))}, outer.Members...)
	require.Equal(t, before, ResolveName(nestedA, DefaultNaming))
}

func TestSynthesize(t *testing.T) {
	props := []model.Property{
		{PropertyMember: model.PropertyMember{Name: "count", Type: ref("int"), Visibility: model.VisibilityPublic},
			Class: model.Classification{Kind: model.KindPrimitive, Primitive: model.PrimInt}},
		{PropertyMember: model.PropertyMember{Name: "name", Type: ref("String"), Visibility: model.VisibilityProtected},
			Class: model.Classification{Kind: model.KindPlainObject}},
		{PropertyMember: model.PropertyMember{Name: "nick", Type: ref("String"), Nullable: true},
			Class: model.Classification{Kind: model.KindNullableObject}},
		{PropertyMember: model.PropertyMember{Name: "alias", Type: ref("Optional", ref("String"))},
			Class: model.Classification{Kind: model.KindOptionalWrapped, Inner: ref("String")}},
	}

	spec := Synthesize("GeneratedPerson", props)
	require.Equal(t, "GeneratedPerson", spec.Name)
	require.Len(t, spec.Fields, 4)
	require.Len(t, spec.Constructor, 4)

	wantRequired := []bool{false, true, false, true}
	wantEq := []model.EqualityRule{model.EqualValue, model.EqualObject, model.EqualNullable, model.EqualWrapped}
	wantHash := []model.HashRule{model.HashValue, model.HashObject, model.HashNullable, model.HashWrapped}
	for i, p := range props {
		require.Equal(t, p.Name, spec.Fields[i].Name)
		require.Equal(t, p.Name, spec.Constructor[i].Name)
		require.Equal(t, p.Type, spec.Fields[i].Type, "field keeps the declared type verbatim")
		require.Equal(t, p.Visibility, spec.Fields[i].Accessor)
		require.Equal(t, wantRequired[i], spec.Constructor[i].Required, p.Name)
		require.Equal(t, wantEq[i], spec.Equality[i].Rule, p.Name)
		require.Equal(t, wantHash[i], spec.Hash[i].Rule, p.Name)
		require.Equal(t, p.Name, spec.Str[i].Property)
	}
	require.Equal(t, model.PrimInt, spec.Equality[0].Prim)

	// The spec owns its property slice.
	props[0].Name = "changed"
	require.Equal(t, "count", spec.Properties[0].Name)
}
