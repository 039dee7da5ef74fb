package creator

import (
	"errors"
	"strconv"
)

var (
	// ErrInvalidDescription is returned when a description is neither an
	// identifier, a descriptor with a class entry, nor a factory.
	ErrInvalidDescription = errors.New("creator: invalid object description")

	// ErrUnknownClass is matched by UnknownClassError.
	ErrUnknownClass = errors.New("creator: unknown class")

	// ErrAbstractClass is matched by AbstractClassError.
	ErrAbstractClass = errors.New("creator: class cannot be instantiated")

	// ErrDuplicateClass is returned when a class or mixin name is registered twice.
	ErrDuplicateClass = errors.New("creator: class already registered")

	// ErrEmptyClassName is returned when registering a class or mixin without a name.
	ErrEmptyClassName = errors.New("creator: empty class name")
)

// UnknownClassError is returned when the class loader has no class for an identifier.
type UnknownClassError struct{ Class string }

// Error implements the error interface.
func (e *UnknownClassError) Error() string {
	return "creator: unknown class " + strconv.Quote(e.Class)
}

// Is lets errors.Is match ErrUnknownClass.
func (e *UnknownClassError) Is(target error) bool { return target == ErrUnknownClass }

// AbstractClassError is returned when constructing a class that has no constructor.
type AbstractClassError struct{ Class string }

// Error implements the error interface.
func (e *AbstractClassError) Error() string {
	return "creator: class " + strconv.Quote(e.Class) + " is abstract"
}

// Is lets errors.Is match ErrAbstractClass.
func (e *AbstractClassError) Is(target error) bool { return target == ErrAbstractClass }

// WrongTypeError is returned by Build when the constructed instance is not of
// the requested type.
type WrongTypeError struct {
	// Want is the requested type.
	Want string
	// Got is the dynamic type of the instance.
	Got string
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return "creator: instance has type " + e.Got + ", want " + e.Want
}

// ArgumentError is returned by Arg for a missing or mistyped positional argument.
type ArgumentError struct {
	Index int
	Want  string
	Got   string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Got == "" {
		return "creator: missing argument " + strconv.Itoa(e.Index) + " (" + e.Want + ")"
	}
	return "creator: argument " + strconv.Itoa(e.Index) + " has type " + e.Got + ", want " + e.Want
}
