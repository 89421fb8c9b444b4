// Package gogen renders value type specs as Go source using jennifer.
package gogen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/valuegen/internal/model"
)

const (
	valuePkg = "github.com/cmmoran/valuegen/pkg/value"

	DefaultHeader = "Code generated by valuegen. DO NOT EDIT."
)

// identifiers a constructor parameter must not shadow
var reserved = map[string]bool{
	"value":   true,
	"strconv": true,
	"x":       true,
	"o":       true,
	"h":       true,
}

type config struct {
	pkgPath string
	header  string
}

type Option func(*config)

// WithPkgPath sets the import path of the output package so that types
// declared in it are not qualified.
func WithPkgPath(path string) Option {
	return func(c *config) {
		c.pkgPath = path
	}
}

func WithHeader(header string) Option {
	return func(c *config) {
		c.header = header
	}
}

// Render produces one Go file holding an implementation of every spec.
func Render(pkgName string, specs []*model.GeneratedTypeSpec, opts ...Option) *jen.File {
	cfg := config{header: DefaultHeader}
	for _, opt := range opts {
		opt(&cfg)
	}

	var f *jen.File
	if cfg.pkgPath != "" {
		f = jen.NewFilePathName(cfg.pkgPath, pkgName)
	} else {
		f = jen.NewFile(pkgName)
	}
	if cfg.header != "" {
		f.HeaderComment(cfg.header)
	}
	f.ImportName(valuePkg, "value")

	for _, spec := range specs {
		newTypeRenderer(spec).render(f)
	}
	return f
}

type typeRenderer struct {
	spec      *model.GeneratedTypeSpec
	types     typeMapper
	fields    []string
	params    []string
	accessors []string
}

func newTypeRenderer(spec *model.GeneratedTypeSpec) *typeRenderer {
	r := &typeRenderer{spec: spec, types: newTypeMapper(spec)}
	for _, p := range spec.Properties {
		accessor := r.accessorName(p.Name)
		field := fieldName(p.Name)
		// Unexported Go accessors would collide with their own field.
		if field == accessor {
			field += "_"
		}
		param := field
		if reserved[param] {
			param += "_"
		}
		r.fields = append(r.fields, field)
		r.params = append(r.params, param)
		r.accessors = append(r.accessors, accessor)
	}
	return r
}

func (r *typeRenderer) render(f *jen.File) {
	r.renderStruct(f)
	r.renderConstructor(f)
	r.renderFactory(f)
	r.renderAccessors(f)
	r.renderEqual(f)
	r.renderHash(f)
	r.renderString(f)
}

// self is the generated type, instantiated with its type parameters.
func (r *typeRenderer) self() *jen.Statement {
	s := jen.Id(r.spec.Name)
	if len(r.spec.TypeParams) > 0 {
		args := make([]jen.Code, 0, len(r.spec.TypeParams))
		for _, tp := range r.spec.TypeParams {
			args = append(args, jen.Id(tp))
		}
		s.Types(args...)
	}
	return s
}

func (r *typeRenderer) typeParamDecls() []jen.Code {
	out := make([]jen.Code, 0, len(r.spec.TypeParams))
	for _, tp := range r.spec.TypeParams {
		out = append(out, jen.Id(tp).Any())
	}
	return out
}

func (r *typeRenderer) receiver() *jen.Statement {
	return jen.Id("x").Op("*").Add(r.self())
}

func (r *typeRenderer) renderStruct(f *jen.File) {
	f.Commentf("%s is the value implementation of %s.", r.spec.Name, r.spec.SourceName())
	fields := make([]jen.Code, 0, len(r.spec.Properties))
	for i, p := range r.spec.Properties {
		fields = append(fields, jen.Id(r.fields[i]).Add(r.types.property(p)))
	}
	f.Type().Id(r.spec.Name).Types(r.typeParamDecls()...).Struct(fields...)
	f.Line()
}

func (r *typeRenderer) renderConstructor(f *jen.File) {
	params := make([]jen.Code, 0, len(r.spec.Properties))
	var body []jen.Code
	for i, p := range r.spec.Properties {
		params = append(params, jen.Id(r.params[i]).Add(r.types.property(p)))
		if r.spec.Constructor[i].Required && p.Class.Kind == model.KindPlainObject && r.types.absentable(p.Type) {
			body = append(body, jen.If(jen.Qual(valuePkg, "IsAbsent").Call(jen.Id(r.params[i]))).Block(
				jen.Return(jen.Nil(), jen.Qual(valuePkg, "NullArgument").Call(jen.Lit(r.spec.Name), jen.Lit(p.Name))),
			))
		}
	}
	body = append(body, jen.Return(
		jen.Op("&").Add(r.self()).ValuesFunc(func(g *jen.Group) {
			for i := range r.spec.Properties {
				g.Id(r.fields[i]).Op(":").Id(r.params[i])
			}
		}),
		jen.Nil(),
	))

	f.Commentf("New%s rejects absent values for properties that are neither nullable nor optional.", r.spec.Name)
	f.Func().Id("New"+r.spec.Name).Types(r.typeParamDecls()...).Params(params...).Parens(
		jen.List(jen.Op("*").Add(r.self()), jen.Error()),
	).Block(body...)
	f.Line()
}

// renderFactory forwards the declaration's factory method, whose
// parameters may be ordered differently from the properties.
func (r *typeRenderer) renderFactory(f *jen.File) {
	fac := r.spec.Factory
	if fac == nil {
		return
	}
	params := make([]jen.Code, 0, len(fac.Params))
	for i := range fac.Params {
		idx := fac.PropertyIndex[i]
		params = append(params, jen.Id(r.params[idx]).Add(r.types.property(r.spec.Properties[idx])))
	}
	args := make([]jen.Code, 0, len(r.params))
	for _, p := range r.params {
		args = append(args, jen.Id(p))
	}

	name := exported(fac.Method) + strings.Join(r.spec.Source, "")
	f.Commentf("%s mirrors %s.%s.", name, r.spec.SourceName(), fac.Method)
	f.Func().Id(name).Types(r.typeParamDecls()...).Params(params...).Parens(
		jen.List(jen.Op("*").Add(r.self()), jen.Error()),
	).Block(
		jen.Return(jen.Id("New" + r.spec.Name).Call(args...)),
	)
	f.Line()
}

func (r *typeRenderer) renderAccessors(f *jen.File) {
	for i, p := range r.spec.Properties {
		if p.Doc != "" {
			f.Comment(p.Doc)
		}
		f.Func().Params(r.receiver()).Id(r.accessors[i]).Params().Add(r.types.property(p)).Block(
			jen.Return(jen.Id("x").Dot(r.fields[i])),
		)
		f.Line()
	}
}

func (r *typeRenderer) renderEqual(f *jen.File) {
	var cond *jen.Statement
	for i, step := range r.spec.Equality {
		c := r.equalCond(step, r.fields[i])
		if cond == nil {
			cond = c
			continue
		}
		cond = cond.Op("&&").Line().Add(c)
	}

	f.Comment("Equal reports whether o holds the same property values.")
	f.Func().Params(r.receiver()).Id("Equal").Params(jen.Id("o").Op("*").Add(r.self())).Bool().Block(
		jen.If(jen.Id("x").Op("==").Id("o")).Block(jen.Return(jen.True())),
		jen.If(jen.Id("x").Op("==").Nil().Op("||").Id("o").Op("==").Nil()).Block(jen.Return(jen.False())),
		jen.Return(cond),
	)
	f.Line()
}

func (r *typeRenderer) equalCond(step model.EqualityStep, field string) *jen.Statement {
	a, b := jen.Id("x").Dot(field), jen.Id("o").Dot(field)
	switch step.Rule {
	case model.EqualValue:
		switch step.Prim {
		case model.PrimFloat:
			return jen.Qual(valuePkg, "EqualFloat32").Call(a, b)
		case model.PrimDouble:
			return jen.Qual(valuePkg, "EqualFloat64").Call(a, b)
		case model.PrimComplex:
			return jen.Qual(valuePkg, "EqualComplex128").Call(jen.Complex128().Parens(a), jen.Complex128().Parens(b))
		}
		return a.Op("==").Add(b)
	case model.EqualWrapped:
		return a.Dot("Equal").Call(b)
	}
	return jen.Qual(valuePkg, "EqualObject").Call(a, b)
}

func (r *typeRenderer) renderHash(f *jen.File) {
	body := []jen.Code{jen.Id("h").Op(":=").Qual(valuePkg, "Seed")}
	for i, step := range r.spec.Hash {
		body = append(body, jen.Id("h").Op("=").Qual(valuePkg, "Combine").Call(jen.Id("h"), r.hashPart(step, r.fields[i])))
	}
	body = append(body, jen.Return(jen.Id("h")))

	f.Comment("Hash is consistent with Equal.")
	f.Func().Params(r.receiver()).Id("Hash").Params().Uint64().Block(body...)
	f.Line()
}

func (r *typeRenderer) hashPart(step model.HashStep, field string) *jen.Statement {
	v := jen.Id("x").Dot(field)
	switch step.Rule {
	case model.HashValue:
		switch step.Prim {
		case model.PrimBoolean:
			return jen.Qual(valuePkg, "HashBool").Call(v)
		case model.PrimFloat:
			return jen.Qual(valuePkg, "HashFloat32").Call(v)
		case model.PrimDouble:
			return jen.Qual(valuePkg, "HashFloat64").Call(v)
		case model.PrimChar:
			return jen.Qual(valuePkg, "HashRune").Call(v)
		case model.PrimString:
			return jen.Qual(valuePkg, "HashString").Call(v)
		case model.PrimUint:
			return jen.Qual(valuePkg, "HashUint64").Call(jen.Uint64().Parens(v))
		case model.PrimComplex:
			return jen.Qual(valuePkg, "HashComplex128").Call(jen.Complex128().Parens(v))
		}
		return jen.Qual(valuePkg, "HashInt64").Call(jen.Int64().Parens(v))
	case model.HashWrapped:
		return v.Dot("HashCode").Call()
	}
	return jen.Qual(valuePkg, "HashObject").Call(v)
}

func (r *typeRenderer) renderString(f *jen.File) {
	var expr *jen.Statement
	for i, step := range r.spec.Str {
		label := step.Property + "="
		if i == 0 {
			expr = jen.Lit(r.spec.Name + "(" + label)
		} else {
			expr = expr.Op("+").Lit(", " + label)
		}
		expr = expr.Op("+").Add(r.formatPart(step, r.fields[i]))
	}
	expr = expr.Op("+").Lit(")")

	f.Func().Params(r.receiver()).Id("String").Params().String().Block(
		jen.Return(expr),
	)
	f.Line()
}

func (r *typeRenderer) formatPart(step model.StringStep, field string) *jen.Statement {
	v := jen.Id("x").Dot(field)
	switch step.Class.Kind {
	case model.KindOptionalWrapped:
		return v.Dot("String").Call()
	case model.KindPrimitive:
		switch step.Class.Primitive {
		case model.PrimFloat:
			return jen.Qual(valuePkg, "FormatFloat32").Call(v)
		case model.PrimDouble:
			return jen.Qual(valuePkg, "FormatFloat64").Call(v)
		case model.PrimChar:
			return jen.Qual(valuePkg, "FormatRune").Call(v)
		case model.PrimBoolean:
			return jen.Qual("strconv", "FormatBool").Call(v)
		case model.PrimString:
			return v
		case model.PrimUint:
			return jen.Qual("strconv", "FormatUint").Call(jen.Uint64().Parens(v), jen.Lit(10))
		case model.PrimComplex:
			return jen.Qual(valuePkg, "FormatObject").Call(v)
		}
		return jen.Qual("strconv", "FormatInt").Call(jen.Int64().Parens(v), jen.Lit(10))
	}
	return jen.Qual(valuePkg, "FormatObject").Call(v)
}

// accessorName keeps Go method names, which the source interface
// declares, and exports Java ones.
func (r *typeRenderer) accessorName(prop string) string {
	name := prop
	if r.spec.Language != model.LangGo {
		name = exported(prop)
	}
	switch name {
	case "Equal", "Hash", "String":
		return "Get" + name
	}
	return name
}

func fieldName(prop string) string {
	name := unexported(prop)
	if token.IsKeyword(name) {
		name += "_"
	}
	return name
}

func exported(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

func unexported(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
