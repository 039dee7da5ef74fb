package config

import (
	"fmt"
	"sort"

	"github.com/kilianp07/creator/core/creator"
)

// DefaultsConfig seeds the default-configuration table: class identifier to
// initial property values.
type DefaultsConfig map[string]map[string]any

// Validate rejects entries without a class identifier.
func (d DefaultsConfig) Validate() error {
	for class := range d {
		if creator.Canonical(class) == "" {
			return fmt.Errorf("empty class identifier %q", class)
		}
	}
	return nil
}

// Table converts the section for creator.Defaults.Replace.
func (d DefaultsConfig) Table() map[string]creator.Properties {
	out := make(map[string]creator.Properties, len(d))
	for class, props := range d {
		out[class] = props
	}
	return out
}

// ObjectsConfig names object descriptions that can be built by name. A value
// is either a class identifier or a descriptor map with a class entry.
type ObjectsConfig map[string]any

// Validate checks that every value parses as a description.
func (o ObjectsConfig) Validate() error {
	for _, name := range o.Names() {
		if _, err := o.Description(name); err != nil {
			return err
		}
	}
	return nil
}

// Names lists the configured object names in sorted order.
func (o ObjectsConfig) Names() []string {
	names := make([]string, 0, len(o))
	for n := range o {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Description returns the description configured under name.
func (o ObjectsConfig) Description(name string) (creator.Description, error) {
	raw, ok := o[name]
	if !ok {
		return nil, fmt.Errorf("unknown object %s", name)
	}
	switch v := raw.(type) {
	case string, map[string]any:
		d, err := creator.ParseDescription(v)
		if err != nil {
			return nil, fmt.Errorf("object %s: %w", name, err)
		}
		if m, ok := d.(creator.Descriptor); ok {
			if _, ok := m[creator.ClassKey].(string); !ok {
				return nil, fmt.Errorf("object %s: %w: missing %q entry", name, creator.ErrInvalidDescription, creator.ClassKey)
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("object %s: %w: unsupported type %T", name, creator.ErrInvalidDescription, raw)
	}
}
