package parser

import (
	"errors"
	"fmt"

	"github.com/cmmoran/valuegen/internal/model"
)

var (
	ErrNoProperties            = errors.New("no abstract property accessors")
	ErrPrimitiveCannotBeAbsent = errors.New("primitive property cannot be nullable")
	ErrPrivateAccessor         = errors.New("property accessor cannot be private")
	ErrFactoryMismatch         = errors.New("factory parameters do not match properties")
	ErrNestingTooDeep          = errors.New("declaration nested too deeply")
)

// DeclarationError ties an analysis failure to the declaration (and, when
// known, the property) it was found on.
type DeclarationError struct {
	Decl     string
	Property string
	Pos      model.Position
	Err      error
}

func (e *DeclarationError) Error() string {
	loc := ""
	if e.Pos.File != "" {
		loc = fmt.Sprintf("%s:%d: ", e.Pos.File, e.Pos.Line)
	}
	if e.Property != "" {
		return fmt.Sprintf("%s%s.%s: %v", loc, e.Decl, e.Property, e.Err)
	}
	return fmt.Sprintf("%s%s: %v", loc, e.Decl, e.Err)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}
