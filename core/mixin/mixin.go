// Package mixin answers whether a class, or any of its ancestors, uses a
// reusable behavior mixin.
//
// Usages are collected along the ancestry chain. Mixins used by a collected
// mixin are added exactly one level deep: a mixin used by a mixin-of-a-mixin
// is not reported.
package mixin

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/creator/core/logger"
)

// ErrUnknownClass is returned when the class being inspected does not exist.
var ErrUnknownClass = errors.New("mixin: unknown class")

// Hierarchy describes classes and mixins. Describe reports the immediate
// ancestor (empty for none) and the mixins used directly by name, or
// ok=false when name is neither a known class nor a known mixin.
type Hierarchy interface {
	Describe(name string) (parent string, uses []string, ok bool)
}

// MixinChecker is optionally implemented by a Hierarchy that can tell mixins
// from classes. Inspecting a mixin as a class is then rejected.
type MixinChecker interface {
	IsMixin(name string) bool
}

// Classed is implemented by values that know their class identifier.
type Classed interface {
	ClassName() string
}

// Set is a set of mixin identifiers.
type Set map[string]struct{}

// Has reports membership.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Inspector walks a Hierarchy.
type Inspector struct {
	h     Hierarchy
	log   logger.Logger
	canon func(string) string
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger used for debug output.
func WithLogger(l logger.Logger) Option {
	return func(i *Inspector) { i.log = logger.OrNop(l) }
}

// WithCanonical sets the function applied to queried class and mixin names
// before lookup, so that spellings accepted by the Hierarchy compare equal.
func WithCanonical(fn func(string) string) Option {
	return func(i *Inspector) {
		if fn != nil {
			i.canon = fn
		}
	}
}

// NewInspector returns an Inspector over h.
func NewInspector(h Hierarchy, opts ...Option) *Inspector {
	i := &Inspector{h: h, log: logger.NopLogger{}, canon: func(s string) string { return s }}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CollectUsages returns every mixin used by class or its ancestors, plus the
// mixins those mixins use directly. A mixin is rejected as class when the
// Hierarchy implements MixinChecker.
func (i *Inspector) CollectUsages(class string) (Set, error) {
	class = i.canon(class)
	if mc, ok := i.h.(MixinChecker); ok && mc.IsMixin(class) {
		return nil, fmt.Errorf("%w: %s is a mixin", ErrUnknownClass, class)
	}
	parent, uses, ok := i.h.Describe(class)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}

	set := Set{}
	seen := map[string]bool{class: true}
	for {
		for _, m := range uses {
			set[m] = struct{}{}
		}
		if parent == "" {
			break
		}
		if seen[parent] {
			i.log.Warnf("ancestry cycle at %s while inspecting %s", parent, class)
			break
		}
		seen[parent] = true
		var found bool
		next := parent
		parent, uses, found = i.h.Describe(next)
		if !found {
			i.log.Debugw("ancestor not found", map[string]any{"class": class, "ancestor": next})
			break
		}
	}

	direct := set.Sorted()
	for _, m := range direct {
		_, more, found := i.h.Describe(m)
		if !found {
			i.log.Debugw("mixin not found", map[string]any{"class": class, "mixin": m})
			continue
		}
		for _, n := range more {
			set[n] = struct{}{}
		}
	}
	return set, nil
}

// UsesMixin reports whether class, or any ancestor, uses mixin.
func (i *Inspector) UsesMixin(class, mixin string) (bool, error) {
	set, err := i.CollectUsages(class)
	if err != nil {
		return false, err
	}
	return set.Has(i.canon(mixin)), nil
}

// InstanceUsesMixin is UsesMixin for a value that reports its own class.
func (i *Inspector) InstanceUsesMixin(v Classed, mixin string) (bool, error) {
	if v == nil {
		return false, fmt.Errorf("%w: nil instance", ErrUnknownClass)
	}
	return i.UsesMixin(v.ClassName(), mixin)
}
