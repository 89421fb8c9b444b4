package javagen

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/internal/parser"
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

func analyze(t *testing.T, decl *model.TypeDeclaration) *model.GeneratedTypeSpec {
	t.Helper()
	spec, err := parser.NewBuilder(parser.Config{}).Analyze(decl)
	require.NoError(t, err)
	return spec
}

func testClass() *model.TypeDeclaration {
	return &model.TypeDeclaration{
		Name:        "TestClass",
		Kind:        model.DeclClass,
		Package:     "mavir",
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members: []*model.Member{
			accessor("name", ref("String")),
			accessor("longValue", ref("long")),
			accessor("floatValue", ref("float")),
			accessor("booleanValue", ref("boolean")),
			accessor("charValue", ref("char")),
		},
	}
}

func TestRender(t *testing.T) {
	f, err := Render(analyze(t, testClass()))
	require.NoError(t, err)

	assert.Equal(t, "mavir/GeneratedTestClass.java", f.Path)
	src := f.Source
	assert.Contains(t, src, "package mavir;\n\n// Generated by valuegen. Do not edit.\n")
	assert.Contains(t, src, "final class GeneratedTestClass extends TestClass {\n  private final String name;\n")
	assert.Contains(t, src, "  GeneratedTestClass(String name, long longValue, float floatValue, boolean booleanValue, char charValue) {\n"+
		"    if (name == null) {\n"+
		"      throw new NullPointerException(\"Null name\");\n"+
		"    }\n"+
		"    this.name = name;\n"+
		"    this.longValue = longValue;\n")
	assert.NotContains(t, src, "if (longValue == null)")
	assert.Contains(t, src, "  @Override\n  public long longValue() {\n    return longValue;\n  }\n")
	assert.Contains(t, src, "    return \"GeneratedTestClass(\"\n        + \"name=\" + this.name\n        + \", longValue=\" + this.longValue\n")
	assert.Contains(t, src, "        + \", charValue=\" + this.charValue\n        + \")\";\n")
	assert.Contains(t, src, "    if (!(o instanceof GeneratedTestClass)) {\n")
	assert.Contains(t, src, "    GeneratedTestClass that = (GeneratedTestClass) o;\n")
	assert.Contains(t, src, "    return this.name.equals(that.name)\n        && this.longValue == that.longValue\n")
	assert.Contains(t, src, "Float.floatToIntBits(this.floatValue) == Float.floatToIntBits(that.floatValue)")
	assert.Contains(t, src, "    int h = 1;\n    h *= 1000003;\n    h ^= this.name.hashCode();\n")
	assert.Contains(t, src, "    h ^= (int) ((this.longValue >>> 32) ^ this.longValue);\n")
	assert.Contains(t, src, "    h ^= (this.booleanValue ? 1231 : 1237);\n")
	assert.Contains(t, src, "    h ^= this.charValue;\n")
}

func TestRenderNullableOptionalArrays(t *testing.T) {
	decl := &model.TypeDeclaration{
		Name:        "Contact",
		Kind:        model.DeclInterface,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		TypeParams:  []string{"K", "V"},
		Members: []*model.Member{
			accessor("nickname", ref("String"), "Nullable"),
			accessor("phone", ref("Optional", ref("String"))),
			accessor("codes", &model.TypeRef{Name: "int", Dims: 1}),
			accessor("ratio", ref("double")),
			accessor("entry", ref("Map", ref("K"), ref("V"))),
		},
	}
	f, err := Render(analyze(t, decl))
	require.NoError(t, err)
	src := f.Source

	assert.Equal(t, "GeneratedContact.java", f.Path)
	assert.True(t, len(src) > 0 && src[:2] == "//", "no package clause expected")
	assert.Contains(t, src, "final class GeneratedContact<K, V> implements Contact<K, V> {")
	assert.Contains(t, src, "GeneratedContact(String nickname, Optional<String> phone, int[] codes, double ratio, Map<K, V> entry) {")
	assert.NotContains(t, src, "if (nickname == null)")
	assert.Contains(t, src, `throw new NullPointerException("Null phone");`)
	assert.Contains(t, src, `throw new NullPointerException("Null codes");`)
	assert.Contains(t, src, "(this.nickname == null ? that.nickname == null : this.nickname.equals(that.nickname))")
	assert.Contains(t, src, "this.phone.equals(that.phone)")
	assert.Contains(t, src, "java.util.Arrays.equals(this.codes, that.codes)")
	assert.Contains(t, src, "Double.doubleToLongBits(this.ratio) == Double.doubleToLongBits(that.ratio)")
	assert.Contains(t, src, "h ^= (this.nickname == null ? 0 : (this.nickname.hashCode() | 0x80000000));")
	assert.Contains(t, src, "h ^= java.util.Arrays.hashCode(this.codes);")
	assert.Contains(t, src, "+ \", codes=\" + java.util.Arrays.toString(this.codes)")
	assert.Contains(t, src, "GeneratedContact<?, ?> that = (GeneratedContact<?, ?>) o;")
}

func TestRenderNullableHashNeverZero(t *testing.T) {
	decl := &model.TypeDeclaration{
		Name:        "Tags",
		Kind:        model.DeclClass,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members: []*model.Member{
			accessor("label", ref("String"), "Nullable"),
			accessor("weights", &model.TypeRef{Name: "int", Dims: 1}, "Nullable"),
		},
	}
	f, err := Render(analyze(t, decl))
	require.NoError(t, err)

	assert.Contains(t, f.Source, "h ^= (this.label == null ? 0 : (this.label.hashCode() | 0x80000000));")
	assert.Contains(t, f.Source, "h ^= (this.weights == null ? 0 : (java.util.Arrays.hashCode(this.weights) | 0x80000000));")
	assert.NotContains(t, f.Source, "throw new NullPointerException(\"Null weights\");")
}

func TestRenderNested(t *testing.T) {
	outer := &model.TypeDeclaration{Name: "Outer", Kind: model.DeclClass, Package: "a.b"}
	nested := &model.TypeDeclaration{
		Name:        "Nested",
		Kind:        model.DeclClass,
		Package:     "a.b",
		Enclosing:   outer,
		Annotations: []model.Annotation{{Name: "AutoValue"}},
		Members:     []*model.Member{accessor("id", ref("int"))},
	}
	f, err := Render(analyze(t, nested))
	require.NoError(t, err)
	assert.Equal(t, "a/b/GeneratedOuter_Nested.java", f.Path)
	assert.Contains(t, f.Source, "final class GeneratedOuter_Nested extends Outer.Nested {")
}

func TestRenderRejectsGo(t *testing.T) {
	spec := analyze(t, testClass())
	spec.Language = model.LangGo
	_, err := Render(spec)
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestWriteSourceJar(t *testing.T) {
	files := []File{
		{Path: "mavir/B.java", Source: "class B {}"},
		{Path: "mavir/A.java", Source: "class A {}"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteSourceJar(&buf, files))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"META-INF/MANIFEST.MF", "mavir/A.java", "mavir/B.java"}, names)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Created-By: valuegen")

	var again bytes.Buffer
	require.NoError(t, WriteSourceJar(&again, files))
	assert.Equal(t, buf.Bytes(), again.Bytes())

	dup := append(files, File{Path: "mavir/A.java"})
	assert.Error(t, WriteSourceJar(io.Discard, dup))
}

func TestValidateJarPath(t *testing.T) {
	dir := t.TempDir()

	got, err := ValidateJarPath(filepath.Join(dir, "out.srcjar"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.srcjar"), got)

	for _, p := range []string{"", filepath.Join(dir, "out.zip"), filepath.Join(dir, "missing", "out.jar")} {
		_, err := ValidateJarPath(p)
		assert.ErrorIs(t, err, ErrJarPath, p)
	}
}
