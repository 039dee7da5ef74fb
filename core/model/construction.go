package model

import "time"

// Branch identifies which path of the resolution algorithm produced an instance.
type Branch int

const (
	// BranchUnresolved means the call failed before a path was chosen: the
	// description was invalid or the class could not be loaded.
	BranchUnresolved Branch = iota
	// BranchFactory means a factory description was invoked directly.
	BranchFactory
	// BranchConstructor means the ordinary constructor ran without extra arguments.
	BranchConstructor
	// BranchArguments means the ordinary constructor ran with positional arguments.
	BranchArguments
	// BranchSingleton means the class's singleton accessor was invoked.
	BranchSingleton
)

// String returns a label suitable for logs and metric labels.
func (b Branch) String() string {
	switch b {
	case BranchUnresolved:
		return "unresolved"
	case BranchFactory:
		return "factory"
	case BranchConstructor:
		return "constructor"
	case BranchArguments:
		return "arguments"
	case BranchSingleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// Construction records one call to the object creator.
type Construction struct {
	ID string
	// Class is the canonical identifier of a loaded class, empty for factories
	// and for calls that failed before the class was loaded.
	Class     string
	Branch    Branch
	Args      int
	Props     int
	Err       error
	StartTime time.Time
	Duration  time.Duration
}

// Succeeded reports whether the construction produced an instance.
func (c Construction) Succeeded() bool { return c.Err == nil }
