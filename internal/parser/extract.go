package parser

import (
	"fmt"
	"strings"

	"github.com/cmmoran/valuegen/internal/model"
)

// Extract returns the property accessors declared directly on decl, in
// source order. Fields, concrete methods and nested declarations between
// them do not affect the order.
func Extract(decl *model.TypeDeclaration, c *Classifier) ([]model.PropertyMember, error) {
	props := make([]model.PropertyMember, 0, len(decl.Members))

	for _, m := range decl.Members {
		if !isPropertyAccessor(decl, m) {
			continue
		}
		if m.Visibility == model.VisibilityPrivate {
			return nil, &DeclarationError{
				Decl:     decl.Name,
				Property: m.Name,
				Pos:      m.Pos,
				Err:      ErrPrivateAccessor,
			}
		}

		nullable := false
		for _, a := range m.Annotations {
			if c.IsNullableAnnotation(a) {
				nullable = true
				break
			}
		}

		props = append(props, model.PropertyMember{
			Name:       m.Name,
			Type:       m.Returns,
			Visibility: m.Visibility,
			Nullable:   nullable,
			Index:      len(props),
			Doc:        m.Doc,
			Pos:        m.Pos,
		})
	}

	if len(props) == 0 {
		return nil, &DeclarationError{Decl: decl.Name, Pos: decl.Pos, Err: ErrNoProperties}
	}
	return props, nil
}

// isPropertyAccessor: abstract, zero-argument, non-void method.
var objectMethods = map[string]bool{"toString": true, "hashCode": true}

func isPropertyAccessor(decl *model.TypeDeclaration, m *model.Member) bool {
	if m.Kind != model.MemberMethod {
		return false
	}
	if m.HasBody || len(m.Params) > 0 || m.Returns == nil {
		return false
	}
	if m.HasModifier("static") || m.HasModifier("default") || m.HasModifier("native") {
		return false
	}
	// Redeclared Object methods are implemented by the generated type.
	if objectMethods[m.Name] {
		return false
	}
	// Classes need the keyword, interface methods are implicitly abstract.
	if decl.Kind == model.DeclClass && !m.HasModifier("abstract") {
		return false
	}
	return true
}

// ExtractFactory locates the factory method of decl and maps its parameters
// onto props by name. It returns nil when decl declares no factory.
func ExtractFactory(decl *model.TypeDeclaration, props []model.PropertyMember, factoryName string) (*model.Factory, error) {
	var fm *model.Member
	for _, m := range decl.Members {
		if m.Kind != model.MemberMethod || m.Returns == nil || len(m.Params) == 0 {
			continue
		}
		if m.Returns.SimpleName() != decl.Name {
			continue
		}
		if factoryName != "" && m.Name != factoryName {
			continue
		}
		fm = m
		break
	}
	if fm == nil {
		return nil, nil
	}

	// Go accessors are exported while parameters are not, so names fall
	// back to a case-insensitive match.
	byName := make(map[string]int, len(props))
	folded := make(map[string]int, len(props))
	for i, p := range props {
		byName[p.Name] = i
		folded[strings.ToLower(p.Name)] = i
	}

	f := &model.Factory{
		Method:        fm.Name,
		Static:        fm.HasModifier("static"),
		Params:        append([]model.Param(nil), fm.Params...),
		PropertyIndex: make([]int, len(fm.Params)),
	}
	seen := make(map[int]bool, len(fm.Params))
	for i, p := range fm.Params {
		idx, ok := byName[p.Name]
		if !ok {
			idx, ok = folded[strings.ToLower(p.Name)]
		}
		if !ok {
			return nil, &DeclarationError{
				Decl: decl.Name,
				Pos:  fm.Pos,
				Err:  fmt.Errorf("%w: %s has no property %q", ErrFactoryMismatch, fm.Name, p.Name),
			}
		}
		if seen[idx] {
			return nil, &DeclarationError{
				Decl: decl.Name,
				Pos:  fm.Pos,
				Err:  fmt.Errorf("%w: %s repeats property %q", ErrFactoryMismatch, fm.Name, p.Name),
			}
		}
		seen[idx] = true
		f.PropertyIndex[i] = idx
	}
	if len(seen) != len(props) {
		return nil, &DeclarationError{
			Decl: decl.Name,
			Pos:  fm.Pos,
			Err:  fmt.Errorf("%w: %s takes %d of %d properties", ErrFactoryMismatch, fm.Name, len(seen), len(props)),
		}
	}
	return f, nil
}
