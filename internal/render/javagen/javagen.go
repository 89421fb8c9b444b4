// Package javagen renders generated type specs as Java source.
package javagen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cmmoran/valuegen/internal/model"
)

var ErrUnsupportedLanguage = errors.New("java output requires a java declaration")

//go:embed value.java.tmpl
var valueTemplate string

var tmpl = template.Must(
	template.New("value.java").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(valueTemplate),
)

// File is one rendered compilation unit.
type File struct {
	Path   string // slash separated, relative to the source root
	Source string
}

type classView struct {
	Package    string
	Name       string
	TypeParams string
	Wildcards  string
	Relation   string
	Super      string
	Params     []string
	Equals     []string
	Fields     []fieldView
}

type fieldView struct {
	Name       string
	Type       string
	Visibility string
	NullCheck  bool
	Format     string
	Hash       string
}

// Render produces the Java implementation of spec.
func Render(spec *model.GeneratedTypeSpec) (File, error) {
	if spec.Language != "" && spec.Language != model.LangJava {
		return File{}, fmt.Errorf("%s: %w", spec.Name, ErrUnsupportedLanguage)
	}

	view := classView{
		Package:  spec.Package,
		Name:     spec.Name,
		Relation: "extends",
		Super:    spec.SourceName(),
	}
	if spec.Kind == model.DeclInterface {
		view.Relation = "implements"
	}
	if n := len(spec.TypeParams); n > 0 {
		view.TypeParams = "<" + strings.Join(spec.TypeParams, ", ") + ">"
		view.Wildcards = "<" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ">"
	}

	for i, p := range spec.Properties {
		typ := p.Type.String()
		view.Params = append(view.Params, typ+" "+p.Name)
		view.Fields = append(view.Fields, fieldView{
			Name:       p.Name,
			Type:       typ,
			Visibility: spec.Fields[i].Accessor.String(),
			NullCheck:  spec.Constructor[i].Required,
			Format:     formatExpr(p),
			Hash:       hashExpr(spec.Hash[i], p.Type),
		})
		view.Equals = append(view.Equals, equalExpr(spec.Equality[i], p.Type))
	}
	if len(view.Equals) == 0 {
		view.Equals = []string{"true"}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return File{}, fmt.Errorf("render %s: %w", spec.Name, err)
	}
	return File{Path: SourcePath(spec.Package, spec.Name), Source: buf.String()}, nil
}

// SourcePath is where a class of package pkg lives in a source tree.
func SourcePath(pkg, name string) string {
	if pkg == "" {
		return name + ".java"
	}
	return path.Join(strings.ReplaceAll(pkg, ".", "/"), name+".java")
}

func equalExpr(step model.EqualityStep, t *model.TypeRef) string {
	this, that := "this."+step.Property, "that."+step.Property
	if t != nil && t.Dims > 0 {
		return fmt.Sprintf("java.util.Arrays.equals(%s, %s)", this, that)
	}
	switch step.Rule {
	case model.EqualValue:
		switch step.Prim {
		case model.PrimFloat:
			return fmt.Sprintf("Float.floatToIntBits(%s) == Float.floatToIntBits(%s)", this, that)
		case model.PrimDouble:
			return fmt.Sprintf("Double.doubleToLongBits(%s) == Double.doubleToLongBits(%s)", this, that)
		}
		return this + " == " + that
	case model.EqualNullable:
		return fmt.Sprintf("(%s == null ? %s == null : %s.equals(%s))", this, that, this, that)
	}
	return fmt.Sprintf("%s.equals(%s)", this, that)
}

// presentBit marks every present nullable contribution, so none of them
// equals the absent sentinel.
const presentBit = "0x80000000"

func hashExpr(step model.HashStep, t *model.TypeRef) string {
	this := "this." + step.Property
	if t != nil && t.Dims > 0 {
		arr := fmt.Sprintf("java.util.Arrays.hashCode(%s)", this)
		if step.Rule == model.HashNullable {
			return fmt.Sprintf("(%s == null ? %d : (%s | %s))", this, model.NullSentinel, arr, presentBit)
		}
		return arr
	}
	switch step.Rule {
	case model.HashValue:
		switch step.Prim {
		case model.PrimBoolean:
			return fmt.Sprintf("(%s ? 1231 : 1237)", this)
		case model.PrimLong:
			return fmt.Sprintf("(int) ((%s >>> 32) ^ %s)", this, this)
		case model.PrimFloat:
			return fmt.Sprintf("Float.floatToIntBits(%s)", this)
		case model.PrimDouble:
			bits := fmt.Sprintf("Double.doubleToLongBits(%s)", this)
			return fmt.Sprintf("(int) ((%s >>> 32) ^ %s)", bits, bits)
		}
		return this
	case model.HashNullable:
		return fmt.Sprintf("(%s == null ? %d : (%s.hashCode() | %s))", this, model.NullSentinel, this, presentBit)
	}
	return this + ".hashCode()"
}

func formatExpr(p model.Property) string {
	this := "this." + p.Name
	if p.Type != nil && p.Type.Dims > 0 {
		return fmt.Sprintf("java.util.Arrays.toString(%s)", this)
	}
	return this
}
