package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/internal/parser"
	"github.com/cmmoran/valuegen/pkg/value"
)

func accessor(name, typ string, anns ...string) *model.Member {
	m := &model.Member{
		Kind:       model.MemberMethod,
		Name:       name,
		Returns:    &model.TypeRef{Name: typ},
		Visibility: model.VisibilityPublic,
		Modifiers:  []string{"abstract"},
	}
	for _, a := range anns {
		m.Annotations = append(m.Annotations, model.Annotation{Name: a, Raw: a})
	}
	return m
}

func analyze(t *testing.T, name string, members ...*model.Member) *model.GeneratedTypeSpec {
	t.Helper()
	return analyzeIn(t, "", name, members...)
}

func analyzeIn(t *testing.T, pkg, name string, members ...*model.Member) *model.GeneratedTypeSpec {
	t.Helper()
	decl := &model.TypeDeclaration{
		Package:     pkg,
		Name:        name,
		Kind:        model.DeclClass,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members:     members,
	}
	spec, err := parser.NewBuilder(parser.Config{}).Analyze(decl)
	require.NoError(t, err)
	return spec
}

func testClassSpec(t *testing.T) *model.GeneratedTypeSpec {
	return analyze(t, "TestClass",
		accessor("name", "String"),
		accessor("longValue", "long"),
		accessor("intValue", "int"),
		accessor("floatValue", "float"),
		accessor("doubleValue", "double"),
		accessor("booleanValue", "boolean"),
		accessor("charValue", "char"),
	)
}

func TestTestClassScenario(t *testing.T) {
	spec := testClassSpec(t)

	args := []any{"x", int64(1), int32(2), float32(1.0), 2.0, true, 'a'}
	v, err := value.New(spec, args...)
	require.NoError(t, err)

	require.Equal(t, args, v.Values())
	for i, p := range spec.Properties {
		got, ok := v.Get(p.Name)
		require.True(t, ok)
		require.Equal(t, args[i], got)
	}
	require.Equal(t,
		"GeneratedTestClass(name=x, longValue=1, intValue=2, floatValue=1.0, doubleValue=2.0, booleanValue=true, charValue=a)",
		v.String())
}

func TestNewNormalizesPrimitives(t *testing.T) {
	spec := testClassSpec(t)

	v, err := value.New(spec, "x", 1, 2, 1, 2, true, "a")
	require.NoError(t, err)
	require.Equal(t, []any{"x", int64(1), int32(2), float32(1), float64(2), true, 'a'}, v.Values())

	_, err = value.New(spec, "x", 1, int64(math.MaxInt64), 1.0, 2.0, true, 'a')
	require.ErrorIs(t, err, value.ErrTypeMismatch)

	_, err = value.New(spec, "x", 1, 2, 1.0, 2.0, "yes", 'a')
	require.ErrorIs(t, err, value.ErrTypeMismatch)

	_, err = value.New(spec, "x", 1, 2)
	require.ErrorIs(t, err, value.ErrArity)
}

func TestNullableScenario(t *testing.T) {
	spec := analyze(t, "Names",
		accessor("name", "String", "Nullable"),
		accessor("otherName", "String"),
	)

	v, err := value.New(spec, nil, "other")
	require.NoError(t, err)
	require.Equal(t, "GeneratedNames(name=null, otherName=other)", v.String())

	_, err = value.New(spec, "name", nil)
	require.ErrorIs(t, err, value.ErrConstructionViolation)
	var ce *value.ConstructionError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "otherName", ce.Property)
	require.Equal(t, "GeneratedNames", ce.Type)

	var nilPtr *string
	_, err = value.New(spec, "name", nilPtr)
	require.ErrorIs(t, err, value.ErrConstructionViolation)
}

func TestEquality(t *testing.T) {
	spec := analyze(t, "Person",
		accessor("age", "int"),
		accessor("name", "String"),
		accessor("nick", "String", "Nullable"),
		accessor("alias", "Optional"),
	)
	mk := func(args ...any) *value.Instance {
		v, err := value.New(spec, args...)
		require.NoError(t, err)
		return v
	}

	a := mk(30, "Ann", nil, value.Empty())
	b := mk(30, "Ann", nil, value.Empty())
	c := mk(30, "Ann", nil, value.Empty())

	// reflexive, symmetric, transitive
	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.True(t, b.Equal(c))
	assert.True(t, a.Equal(c))
	assert.Equal(t, a.Hash(), b.Hash())

	withNick := mk(30, "Ann", "A", value.Empty())
	assert.False(t, a.Equal(withNick))
	assert.False(t, withNick.Equal(a))

	withAlias := mk(30, "Ann", nil, value.Of("Annie"))
	assert.False(t, a.Equal(withAlias))
	assert.True(t, withAlias.Equal(mk(30, "Ann", nil, value.Of("Annie"))))
	assert.Equal(t, withAlias.Hash(), mk(30, "Ann", nil, value.Of("Annie")).Hash())

	assert.False(t, a.Equal(mk(31, "Ann", nil, value.Empty())))
	assert.False(t, a.Equal(nil))

	other := analyze(t, "Other",
		accessor("age", "int"),
		accessor("name", "String"),
		accessor("nick", "String", "Nullable"),
		accessor("alias", "Optional"),
	)
	o, err := value.New(other, 30, "Ann", nil, value.Empty())
	require.NoError(t, err)
	assert.False(t, a.Equal(o))
}

func TestOptionalNeverNil(t *testing.T) {
	spec := analyze(t, "Holder", accessor("alias", "Optional"))

	_, err := value.New(spec, nil)
	require.ErrorIs(t, err, value.ErrConstructionViolation)

	_, err = value.New(spec, "raw")
	require.ErrorIs(t, err, value.ErrTypeMismatch)

	o := value.Of(5)
	v, err := value.New(spec, &o)
	require.NoError(t, err)
	require.Equal(t, "GeneratedHolder(alias=Optional[5])", v.String())
}

func TestFloatEquality(t *testing.T) {
	spec := analyze(t, "Point", accessor("x", "double"))
	nan1, err := value.New(spec, math.NaN())
	require.NoError(t, err)
	nan2, err := value.New(spec, math.NaN())
	require.NoError(t, err)
	require.True(t, nan1.Equal(nan2))
	require.Equal(t, nan1.Hash(), nan2.Hash())

	pos, _ := value.New(spec, 0.0)
	neg, _ := value.New(spec, math.Copysign(0, -1))
	require.False(t, pos.Equal(neg))
}

func TestEqualitySameNameOtherPackage(t *testing.T) {
	a := analyzeIn(t, "com.a", "TestClass", accessor("x", "double"))
	b := analyzeIn(t, "com.b", "TestClass", accessor("x", "String"))
	require.Equal(t, a.Name, b.Name)

	va, err := value.New(a, 1.5)
	require.NoError(t, err)
	vb, err := value.New(b, "1.5")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.False(t, va.Equal(vb))
		assert.False(t, vb.Equal(va))
	})

	again, err := value.New(analyzeIn(t, "com.a", "TestClass", accessor("x", "double")), 1.5)
	require.NoError(t, err)
	assert.True(t, va.Equal(again))
	assert.Equal(t, va.Hash(), again.Hash())
}

func TestCompositeFloatProperty(t *testing.T) {
	spec := analyze(t, "Series", accessor("points", "List"))
	mk := func(arg any) *value.Instance {
		v, err := value.New(spec, arg)
		require.NoError(t, err)
		return v
	}
	negZero := math.Copysign(0, -1)

	assert.False(t, mk([]float64{0}).Equal(mk([]float64{negZero})))
	assert.False(t, mk(struct{ X float64 }{0}).Equal(mk(struct{ X float64 }{negZero})))

	a, b := mk([]float64{math.NaN(), 2}), mk([]float64{math.NaN(), 2})
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	a, b = mk(struct{ X float64 }{0.5}), mk(struct{ X float64 }{0.5})
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}
