package value

import (
	"errors"
	"fmt"
)

var (
	ErrConstructionViolation = errors.New("absent value for non-nullable property")
	ErrArity                 = errors.New("wrong number of constructor arguments")
	ErrTypeMismatch          = errors.New("argument does not match property type")
)

// ConstructionError reports a rejected constructor call. No instance is
// produced when it is returned.
type ConstructionError struct {
	Type     string
	Property string
	Err      error
}

func (e *ConstructionError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Property, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// NullArgument is returned by generated constructors for an absent
// argument to a non-nullable property.
func NullArgument(typeName, property string) error {
	return &ConstructionError{Type: typeName, Property: property, Err: ErrConstructionViolation}
}
