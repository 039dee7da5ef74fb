package creator

import (
	"fmt"
	"strings"
)

// ClassKey is the descriptor entry holding the class identifier.
const ClassKey = "class"

// NamespaceSeparator separates namespace segments of a class identifier.
const NamespaceSeparator = `\`

// Properties is a bag of named initial property values.
type Properties = map[string]any

// Description says what to construct. It is one of Identifier, Descriptor
// or Factory.
type Description interface {
	description()
}

// Identifier names a class to construct with no properties.
type Identifier string

// Descriptor is a property bag whose "class" entry names the class; every
// other entry is a property initializer.
type Descriptor map[string]any

// Factory returns a constructed instance directly. No configuration is merged
// and extra arguments are ignored.
type Factory func() (any, error)

func (Identifier) description() {}
func (Descriptor) description() {}
func (Factory) description()    {}

// Canonical strips leading namespace separators, so `\Foo\Bar` and `Foo\Bar`
// name the same class.
func Canonical(class string) string {
	return strings.TrimLeft(class, NamespaceSeparator)
}

// ParseDescription converts a loosely typed value, such as one decoded from a
// configuration file, into a Description.
func ParseDescription(raw any) (Description, error) {
	switch v := raw.(type) {
	case Identifier:
		return v, nil
	case Descriptor:
		return v, nil
	case Factory:
		return v, nil
	case string:
		return Identifier(v), nil
	case map[string]any:
		return Descriptor(v), nil
	case func() (any, error):
		return Factory(v), nil
	case func() any:
		return Factory(func() (any, error) { return v(), nil }), nil
	default:
		return nil, fmt.Errorf("%w: unsupported description type %T", ErrInvalidDescription, raw)
	}
}

// split returns the class identifier and a copy of the remaining entries.
// The descriptor itself is left untouched.
func (d Descriptor) split() (string, Properties, error) {
	raw, ok := d[ClassKey]
	if !ok {
		return "", nil, fmt.Errorf("%w: descriptor must contain a %q entry", ErrInvalidDescription, ClassKey)
	}
	class, ok := raw.(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q entry must be a string, got %T", ErrInvalidDescription, ClassKey, raw)
	}
	props := make(Properties, len(d))
	for k, v := range d {
		if k != ClassKey {
			props[k] = v
		}
	}
	return class, props, nil
}
