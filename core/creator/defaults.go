package creator

import (
	"sort"
	"sync"
)

// Defaults is the default-configuration table: initial property values
// applied to every object created for a class, keyed by canonical class
// identifier. Call-supplied properties take precedence over these values.
//
// Defaults is safe for concurrent use. Entries are deep-copied on the way in
// and on the way out: nested property bags and lists included, so a
// constructor that mutates its configuration cannot change the table.
type Defaults struct {
	mu    sync.RWMutex
	table map[string]Properties
}

// NewDefaults returns an empty table.
func NewDefaults() *Defaults {
	return &Defaults{table: make(map[string]Properties)}
}

// Set replaces the entry for class.
func (d *Defaults) Set(class string, props Properties) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.table[Canonical(class)] = clone(props)
}

// Get returns a copy of the entry for class.
func (d *Defaults) Get(class string) (Properties, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.table[Canonical(class)]
	if !ok {
		return nil, false
	}
	return clone(p), true
}

// Delete removes the entry for class.
func (d *Defaults) Delete(class string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.table, Canonical(class))
}

// Replace swaps the whole table for the given one.
func (d *Defaults) Replace(table map[string]Properties) {
	next := make(map[string]Properties, len(table))
	for class, props := range table {
		next[Canonical(class)] = clone(props)
	}
	d.mu.Lock()
	d.table = next
	d.mu.Unlock()
}

// Reset empties the table.
func (d *Defaults) Reset() { d.Replace(nil) }

// Len returns the number of classes with an entry.
func (d *Defaults) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.table)
}

// Classes lists the classes with an entry, in sorted order.
func (d *Defaults) Classes() []string {
	d.mu.RLock()
	out := make([]string, 0, len(d.table))
	for c := range d.table {
		out = append(out, c)
	}
	d.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Merge returns the entry for class overlaid by props. The
// result is a fresh map; neither input is modified.
func (d *Defaults) Merge(class string, props Properties) Properties {
	d.mu.RLock()
	base := d.table[Canonical(class)]
	merged := make(Properties, len(base)+len(props))
	for k, v := range base {
		merged[k] = deepCopy(v)
	}
	d.mu.RUnlock()
	for k, v := range props {
		merged[k] = v
	}
	return merged
}

func clone(p Properties) Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = deepCopy(v)
	}
	return out
}

// deepCopy copies nested property bags and lists. Other values are returned
// as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return clone(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
