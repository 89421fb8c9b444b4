// Package java reads the declaration subset of Java source files that the
// value-type analysis needs: packages, imports, class and interface
// declarations with their annotations, modifiers and member signatures.
package java

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/cmmoran/valuegen/internal/model"
)

// File is one parsed compilation unit.
type File struct {
	Name    string
	Package string
	Imports []string
	Types   []*model.TypeDeclaration
}

// ParseFile reads and parses the Java source at path.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseString(path, string(src))
}

// ParseString parses src, reporting positions against name.
func ParseString(name, src string) (*File, error) {
	cu, err := javaParser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	docs, err := collectDocs(name, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	f := &File{Name: name, Package: cu.Package}
	for _, imp := range cu.Imports {
		path := imp.Path
		if imp.Static {
			path = "static " + path
		}
		f.Imports = append(f.Imports, path)
	}

	c := converter{file: f, docs: docs}
	for _, td := range cu.Types {
		if td.Class == nil {
			continue
		}
		f.Types = append(f.Types, c.declaration(td.Class, td.Prefix, td.Pos, nil))
	}
	return f, nil
}

// collectDocs maps the offset of the first token following a javadoc
// comment to the comment's text.
func collectDocs(name, src string) (map[int]string, error) {
	lex, err := javaLexer.LexString(name, src)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}
	syms := javaLexer.Symbols()
	docType, skip := syms["DocComment"], map[lexer.TokenType]bool{
		syms["Whitespace"]: true,
		syms["Comment"]:    true,
	}

	docs := map[int]string{}
	pending := ""
	for _, t := range tokens {
		switch {
		case t.Type == docType:
			pending = t.Value
		case skip[t.Type]:
		default:
			if pending != "" {
				docs[t.Pos.Offset] = cleanDoc(pending)
				pending = ""
			}
		}
	}
	return docs, nil
}

func cleanDoc(raw string) string {
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

type converter struct {
	file *File
	docs map[int]string
}

func (c *converter) position(p lexer.Position) model.Position {
	return model.Position{File: c.file.Name, Line: p.Line, Column: p.Column}
}

func (c *converter) declaration(cd *classDecl, pre []*prefix, pos lexer.Position, enclosing *model.TypeDeclaration) *model.TypeDeclaration {
	decl := &model.TypeDeclaration{
		Name:      cd.Name,
		Kind:      model.DeclClass,
		Doc:       c.docs[pos.Offset],
		Enclosing: enclosing,
		Package:   c.file.Package,
		Imports:   c.file.Imports,
		File:      c.file.Name,
		Pos:       c.position(pos),
	}
	if cd.Kind == "interface" {
		decl.Kind = model.DeclInterface
	}
	decl.Modifiers, decl.Annotations = splitPrefix(pre)
	for _, tp := range cd.TypeParams {
		decl.TypeParams = append(decl.TypeParams, tp.Name)
	}

	for _, m := range cd.Members {
		if mem := c.member(decl, m); mem != nil {
			decl.Members = append(decl.Members, mem)
		}
	}
	return decl
}

// member converts one body element. Initializer blocks, constructors and
// skipped declarations produce nil.
func (c *converter) member(owner *model.TypeDeclaration, m *member) *model.Member {
	mods, anns := splitPrefix(m.Prefix)
	out := &model.Member{
		Doc:         c.docs[m.Pos.Offset],
		Modifiers:   mods,
		Annotations: anns,
		Visibility:  visibility(owner, mods),
		Pos:         c.position(m.Pos),
	}

	switch {
	case m.Nested != nil:
		out.Kind = model.MemberNested
		out.Name = m.Nested.Name
		out.Nested = c.declaration(m.Nested, m.Prefix, m.Pos, owner)
	case m.Typed != nil && m.Typed.Method != nil:
		out.Kind = model.MemberMethod
		out.Name = m.Typed.Name
		out.Returns = convertType(m.Typed.Type, len(m.Typed.Method.Dims))
		out.HasBody = m.Typed.Method.Body != nil
		for _, p := range m.Typed.Method.Params {
			out.Params = append(out.Params, convertParam(p))
		}
	case m.Typed != nil && m.Typed.Field != nil:
		out.Kind = model.MemberField
		out.Name = m.Typed.Name
		out.Returns = convertType(m.Typed.Type, len(m.Typed.Field.Dims))
		out.HasBody = m.Typed.Field.Init != nil
	default:
		return nil
	}
	return out
}

// visibility follows the modifiers; interface members without one are
// implicitly public.
func visibility(owner *model.TypeDeclaration, mods []string) model.Visibility {
	for _, mod := range mods {
		switch mod {
		case "public":
			return model.VisibilityPublic
		case "protected":
			return model.VisibilityProtected
		case "private":
			return model.VisibilityPrivate
		}
	}
	if owner.Kind == model.DeclInterface {
		return model.VisibilityPublic
	}
	return model.VisibilityPackage
}

func splitPrefix(pre []*prefix) ([]string, []model.Annotation) {
	var (
		mods []string
		anns []model.Annotation
	)
	for _, p := range pre {
		if p.Annotation != nil {
			anns = append(anns, convertAnnotation(p.Annotation))
			continue
		}
		mods = append(mods, p.Modifier)
	}
	return mods, anns
}

func convertAnnotation(a *annotation) model.Annotation {
	simple := a.Name
	if i := strings.LastIndex(simple, "."); i >= 0 {
		simple = simple[i+1:]
	}
	return model.Annotation{Name: simple, Raw: a.Name}
}

func convertParam(p *param) model.Param {
	dims := len(p.Dims)
	if p.Variadic {
		dims++
	}
	return model.Param{Name: p.Name, Type: convertType(p.Type, dims)}
}

// convertType maps a parsed type; void becomes nil. extraDims covers array
// brackets written after the declarator.
func convertType(t *typeRef, extraDims int) *model.TypeRef {
	if t == nil || (t.Name == "void" && len(t.Dims) == 0) {
		return nil
	}
	out := &model.TypeRef{Name: t.Name, Dims: len(t.Dims) + extraDims}
	for _, a := range t.Args {
		switch {
		case a.Type != nil:
			out.Args = append(out.Args, convertType(a.Type, 0))
		case a.Bound != nil && a.BoundKind == "extends":
			out.Args = append(out.Args, convertType(a.Bound, 0))
		default:
			out.Args = append(out.Args, &model.TypeRef{Name: "Object"})
		}
	}
	return out
}
