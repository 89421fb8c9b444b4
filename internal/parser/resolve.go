package parser

import (
	"strings"

	"github.com/cmmoran/valuegen/internal/model"
)

// Naming controls how synthesized names are formed.
type Naming struct {
	Prefix    string
	Separator string
}

var DefaultNaming = Naming{Prefix: "Generated", Separator: "_"}

// AutoValueNaming reproduces the AutoValue_Outer_Inner convention.
var AutoValueNaming = Naming{Prefix: "AutoValue_", Separator: "_"}

// ResolveName returns the synthesized name of decl: the prefix followed by
// every name of its enclosing chain, outermost first. The result depends on
// nothing but that chain.
func ResolveName(decl *model.TypeDeclaration, n Naming) string {
	return n.Prefix + strings.Join(decl.Chain(), n.Separator)
}
