// Package configure applies a bag of named values onto an already constructed
// object.
//
// Types opt in explicitly by implementing Configurable. Plain structs reached
// through a pointer are filled by field name instead: json tags first, then
// a case-insensitive match on the Go field name. Names that match nothing are
// rejected, and fields that are not named keep their current value. A named
// field is replaced as a whole: maps and nested structs are not merged with
// their previous contents. A struct target is only updated when every entry
// decodes.
package configure

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ErrNotConfigurable is returned when the target neither implements
// Configurable nor is a non-nil pointer to a struct.
var ErrNotConfigurable = errors.New("configure: target is not configurable")

// Configurable is implemented by types that accept named property writes.
// SetProperty returns an error for names or values the type rejects.
type Configurable interface {
	SetProperty(name string, value any) error
}

// Apply assigns every entry of props onto target and returns target itself.
// The target is mutated in place. Errors from a Configurable are returned
// unchanged and leave earlier assignments applied.
func Apply[T any](target T, props map[string]any) (T, error) {
	if len(props) == 0 {
		return target, nil
	}
	if c, ok := any(target).(Configurable); ok {
		for _, name := range sortedKeys(props) {
			if err := c.SetProperty(name, props[name]); err != nil {
				return target, err
			}
		}
		return target, nil
	}
	if err := decodeFields(target, props); err != nil {
		return target, err
	}
	return target, nil
}

func decodeFields(target any, props map[string]any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrNotConfigurable, target)
	}
	staged := reflect.New(rv.Elem().Type())
	staged.Elem().Set(rv.Elem())
	resetNamed(staged.Elem(), props)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      staged.Interface(),
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(props); err != nil {
		return err
	}
	rv.Elem().Set(staged.Elem())
	return nil
}

// resetNamed zeroes the exported fields of v that props names, using the same
// name matching as the decoder.
func resetNamed(v reflect.Value, props map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" {
			if tag == "-" {
				continue
			}
			name = tag
		}
		for k := range props {
			if strings.EqualFold(k, name) {
				v.Field(i).SetZero()
				break
			}
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
