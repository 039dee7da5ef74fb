package creator

import (
	"fmt"
	"sort"
	"sync"
)

// ClassLoader resolves a class identifier to its metadata.
type ClassLoader interface {
	LoadClass(name string) (*Class, error)
}

// Registry is an in-memory ClassLoader. It also describes classes and mixins
// to the mixin inspector.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	mixins  map[string]*Mixin
}

// NewRegistry returns an empty class registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*Class),
		mixins:  make(map[string]*Mixin),
	}
}

// Register adds a class. Names are canonicalized; a class and a mixin cannot
// share a name.
func (r *Registry) Register(c Class) error {
	name := Canonical(c.Name)
	if name == "" {
		return ErrEmptyClassName
	}
	c.Name = name
	c.Parent = Canonical(c.Parent)
	c.Mixins = canonicalAll(c.Mixins)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, name)
	}
	r.classes[name] = &c
	return nil
}

// MustRegister is Register for package initialization; it panics on error.
func (r *Registry) MustRegister(c Class) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// RegisterMixin adds a mixin.
func (r *Registry) RegisterMixin(m Mixin) error {
	name := Canonical(m.Name)
	if name == "" {
		return ErrEmptyClassName
	}
	m.Name = name
	m.Uses = canonicalAll(m.Uses)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateClass, name)
	}
	r.mixins[name] = &m
	return nil
}

// LoadClass implements ClassLoader.
func (r *Registry) LoadClass(name string) (*Class, error) {
	name = Canonical(name)
	r.mu.RLock()
	c, ok := r.classes[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownClassError{Class: name}
	}
	return c, nil
}

// Describe reports the parent and directly used mixins of a class or mixin.
func (r *Registry) Describe(name string) (string, []string, bool) {
	name = Canonical(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.classes[name]; ok {
		return c.Parent, append([]string(nil), c.Mixins...), true
	}
	if m, ok := r.mixins[name]; ok {
		return "", append([]string(nil), m.Uses...), true
	}
	return "", nil, false
}

// IsMixin reports whether name is a registered mixin.
func (r *Registry) IsMixin(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.mixins[Canonical(name)]
	return ok
}

// Classes lists registered class names in sorted order.
func (r *Registry) Classes() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.classes))
	for n := range r.classes {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Mixins lists registered mixin names in sorted order.
func (r *Registry) Mixins() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.mixins))
	for n := range r.mixins {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// taken must be called with mu held.
func (r *Registry) taken(name string) bool {
	_, c := r.classes[name]
	_, m := r.mixins[name]
	return c || m
}

func canonicalAll(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = Canonical(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
