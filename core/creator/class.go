package creator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/kilianp07/creator/core/configure"
)

// Constructor builds an instance from a positional argument list.
type Constructor func(args ...any) (any, error)

// Class is the metadata the creator needs to build instances of one class.
type Class struct {
	// Name is the class identifier. It is canonicalized on registration.
	Name string
	// Parent is the identifier of the immediate ancestor, if any.
	Parent string
	// Mixins lists the reusable behavior mixins the class uses directly.
	Mixins []string
	// New is the ordinary constructor. A nil New marks an abstract class.
	New Constructor
	// Instance is the singleton accessor. When set, constructions with extra
	// arguments go through it instead of New, and it alone decides whether a
	// previous instance is reused. See Singleton.
	Instance Constructor
}

// IsSingleton reports whether the class declares a singleton accessor.
func (c *Class) IsSingleton() bool { return c.Instance != nil }

// IsAbstract reports whether the class has no ordinary constructor.
func (c *Class) IsAbstract() bool { return c.New == nil }

// Mixin is a named reusable behavior. A mixin may itself use other mixins.
type Mixin struct {
	Name string
	Uses []string
}

// Singleton wraps ctor into a singleton accessor: the first successful call
// constructs the instance with its arguments and every later call returns
// that same instance, whatever arguments it receives. A failed first call
// is not remembered.
func Singleton(ctor Constructor) Constructor {
	var (
		mu       sync.Mutex
		done     bool
		instance any
	)
	return func(args ...any) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return instance, nil
		}
		v, err := ctor(args...)
		if err != nil {
			return nil, err
		}
		instance, done = v, true
		return instance, nil
	}
}

// NewConfigurable returns a Constructor for types whose constructor accepts
// optional property bags. Every argument must be a property bag; each is
// applied, in order, to the instance returned by newFn.
func NewConfigurable[T any](newFn func() T) Constructor {
	return func(args ...any) (any, error) {
		obj := newFn()
		for i, a := range args {
			switch props := a.(type) {
			case nil:
			case map[string]any:
				if _, err := configure.Apply(obj, props); err != nil {
					return nil, err
				}
			default:
				return nil, &ArgumentError{Index: i, Want: "property bag", Got: fmt.Sprintf("%T", a)}
			}
		}
		return obj, nil
	}
}

// Arg returns positional argument i as a T.
func Arg[T any](args []any, i int) (T, error) {
	var zero T
	want := reflect.TypeOf((*T)(nil)).Elem().String()
	if i < 0 || i >= len(args) {
		return zero, &ArgumentError{Index: i, Want: want}
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, &ArgumentError{Index: i, Want: want, Got: fmt.Sprintf("%T", args[i])}
	}
	return v, nil
}
