package gogen

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/model"
	vparser "github.com/cmmoran/valuegen/internal/parser"
)

func accessor(name string, typ *model.TypeRef, anns ...string) *model.Member {
	m := &model.Member{
		Kind:       model.MemberMethod,
		Name:       name,
		Returns:    typ,
		Visibility: model.VisibilityPublic,
		Modifiers:  []string{"abstract"},
	}
	for _, a := range anns {
		m.Annotations = append(m.Annotations, model.Annotation{Name: a, Raw: a})
	}
	return m
}

func ref(name string, args ...*model.TypeRef) *model.TypeRef {
	return &model.TypeRef{Name: name, Args: args}
}

func analyze(t *testing.T, cfg vparser.Config, decl *model.TypeDeclaration) *model.GeneratedTypeSpec {
	t.Helper()
	spec, err := vparser.NewBuilder(cfg).Analyze(decl)
	require.NoError(t, err)
	return spec
}

func render(t *testing.T, specs ...*model.GeneratedTypeSpec) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render("mavir", specs).Render(&buf))
	_, err := parser.ParseFile(token.NewFileSet(), "out.go", buf.Bytes(), parser.AllErrors)
	require.NoError(t, err)
	return buf.String()
}

func testClass() *model.TypeDeclaration {
	create := &model.Member{
		Kind:       model.MemberMethod,
		Name:       "create",
		Returns:    ref("TestClass"),
		Visibility: model.VisibilityPublic,
		HasBody:    true,
		Params: []model.Param{
			{Name: "charValue", Type: ref("char")},
			{Name: "name", Type: ref("String")},
			{Name: "longValue", Type: ref("long")},
		},
	}
	return &model.TypeDeclaration{
		Name:        "TestClass",
		Kind:        model.DeclClass,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members: []*model.Member{
			accessor("name", ref("String")),
			accessor("longValue", ref("long")),
			accessor("charValue", ref("char")),
			create,
		},
	}
}

func TestRenderJava(t *testing.T) {
	src := render(t, analyze(t, vparser.Config{}, testClass()))

	assert.Contains(t, src, "// Code generated by valuegen. DO NOT EDIT.")
	assert.Contains(t, src, "package mavir")
	assert.Contains(t, src, `value "github.com/cmmoran/valuegen/pkg/value"`)
	assert.Contains(t, src, "type GeneratedTestClass struct {")
	assert.Contains(t, src, "func NewGeneratedTestClass(name string, longValue int64, charValue rune) (*GeneratedTestClass, error) {")
	assert.Contains(t, src, "func CreateTestClass(charValue rune, name string, longValue int64) (*GeneratedTestClass, error) {")
	assert.Contains(t, src, "return NewGeneratedTestClass(name, longValue, charValue)")
	assert.Contains(t, src, "func (x *GeneratedTestClass) LongValue() int64 {")
	assert.Contains(t, src, "func (x *GeneratedTestClass) Equal(o *GeneratedTestClass) bool {")
	assert.Contains(t, src, "value.EqualObject(x.name, o.name)")
	assert.Contains(t, src, "x.longValue == o.longValue")
	assert.Contains(t, src, "h = value.Combine(h, value.HashInt64(int64(x.longValue)))")
	assert.Contains(t, src, "h = value.Combine(h, value.HashRune(x.charValue))")
	assert.Contains(t, src, `"GeneratedTestClass(name=" + value.FormatObject(x.name)`)
	assert.Contains(t, src, `", charValue=" + value.FormatRune(x.charValue) + ")"`)
	assert.NotContains(t, src, "IsAbsent(name)")
}

func TestRenderNullableAndCollections(t *testing.T) {
	decl := &model.TypeDeclaration{
		Name:        "Contact",
		Kind:        model.DeclClass,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members: []*model.Member{
			accessor("nickname", ref("String"), "Nullable"),
			accessor("phone", ref("Optional", ref("String"))),
			accessor("tags", ref("List", ref("String"))),
			accessor("scores", ref("Map", ref("String"), ref("Integer"))),
			accessor("ratio", ref("double")),
			accessor("type", ref("Object")),
			accessor("value", ref("Address")),
		},
	}
	src := render(t, analyze(t, vparser.Config{}, decl))

	assert.Contains(t, src, "func NewGeneratedContact(nickname *string, phone value.Optional, tags []string, scores map[string]int32, ratio float64, type_ any, value_ any) (*GeneratedContact, error) {")
	assert.Contains(t, src, `if value.IsAbsent(tags) {`)
	assert.Contains(t, src, `return nil, value.NullArgument("GeneratedContact", "tags")`)
	assert.Contains(t, src, `return nil, value.NullArgument("GeneratedContact", "value")`)
	assert.NotContains(t, src, "IsAbsent(nickname)")
	assert.NotContains(t, src, "IsAbsent(phone)")
	assert.Contains(t, src, "x.phone.Equal(o.phone)")
	assert.Contains(t, src, "value.EqualFloat64(x.ratio, o.ratio)")
	assert.Contains(t, src, "x.phone.HashCode()")
	assert.Contains(t, src, "x.phone.String()")
	assert.Contains(t, src, "func (x *GeneratedContact) Type() any {")
	assert.Regexp(t, `value:\s+value_[,}]`, src)
}

func TestRenderGo(t *testing.T) {
	decl := &model.TypeDeclaration{
		Name:        "Box",
		Kind:        model.DeclInterface,
		Annotations: []model.Annotation{{Name: "valuegen:value"}},
		TypeParams:  []string{"T"},
		Package:     "example.com/boxes",
		Members: []*model.Member{
			{Kind: model.MemberMethod, Name: "Item", Returns: ref("T"), Visibility: model.VisibilityPublic},
			{Kind: model.MemberMethod, Name: "size", Returns: ref("uint"), Visibility: model.VisibilityPackage},
			{Kind: model.MemberMethod, Name: "Added", Returns: &model.TypeRef{Name: "time.Time", PkgPath: "time"}, Visibility: model.VisibilityPublic},
			{
				Kind:        model.MemberMethod,
				Name:        "Label",
				Returns:     &model.TypeRef{Name: "string", IsPtr: true},
				Visibility:  model.VisibilityPublic,
				Annotations: []model.Annotation{{Name: "nullable"}},
			},
		},
	}
	cfg := vparser.Config{Profile: vparser.GoProfile, Annotations: []string{"valuegen:value"}}
	src := render(t, analyze(t, cfg, decl))

	assert.Contains(t, src, "type GeneratedBox[T any] struct {")
	assert.Contains(t, src, "func NewGeneratedBox[T any](item T, size_ uint, added time.Time, label *string) (*GeneratedBox[T], error) {")
	assert.Contains(t, src, "if value.IsAbsent(item) {")
	assert.Contains(t, src, "func (x *GeneratedBox[T]) size() uint {")
	assert.Contains(t, src, "func (x *GeneratedBox[T]) Item() T {")
	assert.Contains(t, src, "value.HashUint64(uint64(x.size_))")
	assert.Contains(t, src, "strconv.FormatUint(uint64(x.size_), 10)")
	assert.Contains(t, src, "return &GeneratedBox[T]{")
}
