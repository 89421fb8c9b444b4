// Package golang turns Go interfaces marked with a //valuegen:value
// directive into type declarations for the value-type analysis.
//
//	//valuegen:value
//	type Person interface {
//		Name() string
//		//valuegen:nullable
//		Nickname() *string
//		Phone() value.Optional
//	}
package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/valuegen/internal/model"
)

const (
	// ValueDirective marks an interface as a value type declaration.
	ValueDirective = "//valuegen:value"
	// NullableDirective marks an accessor whose result may be absent.
	NullableDirective = "//valuegen:nullable"

	// MarkerAnnotation is recorded on every marked interface.
	MarkerAnnotation = "valuegen:value"
	// NullableAnnotation is recorded on every nullable accessor.
	NullableAnnotation = "nullable"
)

var ErrLoad = errors.New("failed to load go packages")

// Load type-checks the packages matched by patterns under dir and returns
// the marked interfaces in file order.
func Load(ctx context.Context, dir string, patterns ...string) ([]*model.TypeDeclaration, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  dir,
		Fset: fset,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	var (
		decls []*model.TypeDeclaration
		errs  []error
	)
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		if len(pkg.Errors) > 0 {
			continue
		}
		for _, file := range pkg.Syntax {
			decls = append(decls, collectInterfaces(fset, pkg, file)...)
		}
	}
	if len(errs) > 0 {
		return decls, fmt.Errorf("%w: %w", ErrLoad, errors.Join(errs...))
	}
	return decls, nil
}

func collectInterfaces(fset *token.FileSet, pkg *packages.Package, file *ast.File) []*model.TypeDeclaration {
	var (
		out     []*model.TypeDeclaration
		imports = fileImports(file)
	)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || ts.Assign.IsValid() {
				continue
			}
			iface, ok := ts.Type.(*ast.InterfaceType)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if !hasDirective(doc, ValueDirective) {
				continue
			}

			pos := fset.Position(ts.Pos())
			td := &model.TypeDeclaration{
				Name:        ts.Name.Name,
				Kind:        model.DeclInterface,
				Doc:         strings.TrimSpace(doc.Text()),
				Annotations: []model.Annotation{{Name: MarkerAnnotation, Raw: ValueDirective}},
				Package:     pkg.PkgPath,
				Imports:     imports,
				File:        pos.Filename,
				Pos:         model.Position{File: pos.Filename, Line: pos.Line, Column: pos.Column},
			}
			if ts.TypeParams != nil {
				for _, f := range ts.TypeParams.List {
					for _, n := range f.Names {
						td.TypeParams = append(td.TypeParams, n.Name)
					}
				}
			}
			td.Members = interfaceMembers(fset, pkg.TypesInfo, iface)
			out = append(out, td)
		}
	}
	return out
}

func interfaceMembers(fset *token.FileSet, info *types.Info, iface *ast.InterfaceType) []*model.Member {
	var out []*model.Member
	for _, field := range iface.Methods.List {
		// embedded interfaces and type-set terms carry no names
		if len(field.Names) == 0 {
			continue
		}
		sig, ok := info.TypeOf(field.Type).(*types.Signature)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			pos := fset.Position(name.Pos())
			m := &model.Member{
				Kind:       model.MemberMethod,
				Name:       name.Name,
				Doc:        strings.TrimSpace(field.Doc.Text()),
				Visibility: model.VisibilityPackage,
				Pos:        model.Position{File: pos.Filename, Line: pos.Line, Column: pos.Column},
			}
			if name.IsExported() {
				m.Visibility = model.VisibilityPublic
			}
			if hasDirective(field.Doc, NullableDirective) {
				m.Annotations = append(m.Annotations, model.Annotation{Name: NullableAnnotation, Raw: NullableDirective})
			}
			if sig.Results().Len() == 1 {
				m.Returns = typeRef(sig.Results().At(0).Type())
			}
			params := sig.Params()
			for i := 0; i < params.Len(); i++ {
				p := params.At(i)
				m.Params = append(m.Params, model.Param{Name: p.Name(), Type: typeRef(p.Type())})
			}
			out = append(out, m)
		}
	}
	return out
}

// typeRef converts a checked Go type. Slices and arrays count as
// dimensions; maps become "map" with key and value arguments.
func typeRef(t types.Type) *model.TypeRef {
	switch tt := t.(type) {
	case *types.Basic:
		return &model.TypeRef{Name: tt.Name()}
	case *types.Pointer:
		ref := typeRef(tt.Elem())
		ref.IsPtr = true
		return ref
	case *types.Slice:
		ref := typeRef(tt.Elem())
		ref.Dims++
		return ref
	case *types.Array:
		ref := typeRef(tt.Elem())
		ref.Dims++
		return ref
	case *types.Map:
		return &model.TypeRef{Name: "map", Args: []*model.TypeRef{typeRef(tt.Key()), typeRef(tt.Elem())}}
	case *types.Alias:
		return typeRef(types.Unalias(tt))
	case *types.Named:
		obj := tt.Obj()
		ref := &model.TypeRef{Name: obj.Name()}
		if obj.Pkg() != nil {
			ref.PkgPath = obj.Pkg().Path()
			ref.Name = obj.Pkg().Name() + "." + obj.Name()
		}
		if args := tt.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				ref.Args = append(ref.Args, typeRef(args.At(i)))
			}
		}
		return ref
	case *types.TypeParam:
		return &model.TypeRef{Name: tt.Obj().Name()}
	}
	return &model.TypeRef{Name: types.TypeString(t, nil)}
}

func fileImports(file *ast.File) []string {
	out := make([]string, 0, len(file.Imports))
	for _, imp := range file.Imports {
		out = append(out, strings.Trim(imp.Path.Value, `"`))
	}
	return out
}

func hasDirective(cg *ast.CommentGroup, directive string) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		if strings.TrimSpace(c.Text) == directive {
			return true
		}
	}
	return false
}
