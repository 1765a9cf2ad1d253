package factory

import "fmt"

// DuplicateRegistrationError is returned when a type name is registered twice.
type DuplicateRegistrationError struct {
	Kind string
	Name string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("%s type %q is already registered", e.Kind, e.Name)
}

// UnknownTypeError is returned when a type name has no registration.
type UnknownTypeError struct {
	Kind string
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Name)
}
