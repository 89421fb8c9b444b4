package model

import (
	"strings"
)

type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclInterface
)

type MemberKind int

const (
	MemberMethod MemberKind = iota
	MemberField
	MemberNested
)

// Visibility is the access level of a member as written in source.
type Visibility int

const (
	VisibilityPackage Visibility = iota // no modifier
	VisibilityPrivate
	VisibilityProtected
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityProtected:
		return "protected"
	case VisibilityPublic:
		return "public"
	default:
		return ""
	}
}

// Position is a 1-based source location.
type Position struct {
	File   string
	Line   int
	Column int
}

type TypeRef struct {
	Name    string     // "String", "long", "java.util.Optional", "Optional"
	PkgPath string     // Go import path; "" for Java and builtins
	Args    []*TypeRef // generic arguments
	Dims    int        // array dimensions
	IsPtr   bool       // Go pointer
}

// SimpleName strips any package qualification from Name.
func (t *TypeRef) SimpleName() string {
	if t == nil {
		return ""
	}
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// String renders the type the way it was written.
func (t *TypeRef) String() string {
	if t == nil {
		return "void"
	}
	var sb strings.Builder
	if t.IsPtr {
		sb.WriteByte('*')
	}
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

type Param struct {
	Name string
	Type *TypeRef
}

type Annotation struct {
	Name string // simple name, "Nullable"
	Raw  string // as written, "javax.annotation.Nullable"
}

type Member struct {
	Kind        MemberKind
	Name        string
	Doc         string
	Returns     *TypeRef // method result or field type; nil for void
	Params      []Param
	Visibility  Visibility
	Modifiers   []string
	Annotations []Annotation
	HasBody     bool
	Pos         Position

	Nested *TypeDeclaration // only valid when MemberNested
}

// HasModifier reports whether mod was written on the member.
func (m *Member) HasModifier(mod string) bool {
	for _, x := range m.Modifiers {
		if x == mod {
			return true
		}
	}
	return false
}

// HasAnnotation matches on the simple annotation name.
func (m *Member) HasAnnotation(names ...string) bool {
	return hasAnnotation(m.Annotations, names)
}

type TypeDeclaration struct {
	Name        string
	Kind        DeclKind
	Doc         string
	Modifiers   []string
	Annotations []Annotation
	TypeParams  []string
	Members     []*Member
	Enclosing   *TypeDeclaration // nil for top-level declarations

	// Source context shared by every declaration of one file.
	Package string
	Imports []string
	File    string
	Pos     Position
}

func (d *TypeDeclaration) HasAnnotation(names ...string) bool {
	return hasAnnotation(d.Annotations, names)
}

// Chain returns the declaration names from the outermost enclosing
// declaration down to d.
func (d *TypeDeclaration) Chain() []string {
	var names []string
	for cur := d; cur != nil; cur = cur.Enclosing {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Depth is the number of enclosing declarations above d.
func (d *TypeDeclaration) Depth() int {
	n := 0
	for cur := d.Enclosing; cur != nil; cur = cur.Enclosing {
		n++
	}
	return n
}

// NestedTypes returns the nested declarations of d in source order.
func (d *TypeDeclaration) NestedTypes() []*TypeDeclaration {
	var out []*TypeDeclaration
	for _, m := range d.Members {
		if m.Kind == MemberNested && m.Nested != nil {
			out = append(out, m.Nested)
		}
	}
	return out
}

func hasAnnotation(anns []Annotation, names []string) bool {
	for _, a := range anns {
		for _, n := range names {
			if a.Name == n || a.Raw == n {
				return true
			}
		}
	}
	return false
}
