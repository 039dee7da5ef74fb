package creator

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/creator/core/logger"
	"github.com/kilianp07/creator/core/model"
)

// Publisher receives one record per construction.
type Publisher interface {
	Publish(model.Construction)
}

// Creator resolves descriptions into constructed, configured instances.
type Creator struct {
	loader   ClassLoader
	defaults *Defaults
	// classes memoizes successful class lookups for the process lifetime.
	classes sync.Map // map[string]*Class
	log     logger.Logger
	events  Publisher
}

// Option configures a Creator.
type Option func(*Creator)

// WithDefaults shares an existing default-configuration table.
func WithDefaults(d *Defaults) Option {
	return func(c *Creator) {
		if d != nil {
			c.defaults = d
		}
	}
}

// WithLogger sets the logger used for resolution traces.
func WithLogger(l logger.Logger) Option {
	return func(c *Creator) { c.log = logger.OrNop(l) }
}

// WithEvents publishes a model.Construction for every call to Construct.
func WithEvents(p Publisher) Option {
	return func(c *Creator) { c.events = p }
}

// New returns a Creator resolving classes through loader. A nil loader is
// replaced by an empty Registry.
func New(loader ClassLoader, opts ...Option) *Creator {
	if loader == nil {
		loader = NewRegistry()
	}
	c := &Creator{
		loader:   loader,
		defaults: NewDefaults(),
		log:      logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Defaults returns the default-configuration table consulted on every call.
func (c *Creator) Defaults() *Defaults { return c.defaults }

// Construct builds the object described by desc.
//
// A Factory is invoked and its result returned as is. Otherwise the class
// defaults are merged under the description's properties, and:
//   - without extra arguments, the class constructor receives the merged
//     properties as its only argument, or no argument when they are empty;
//   - with extra arguments, the positional list is args followed by the
//     merged properties when non-empty, and it is handed to the singleton
//     accessor if the class has one, to the constructor otherwise.
//
// Errors returned by constructors, accessors and factories are passed
// through unchanged.
func (c *Creator) Construct(desc Description, args ...any) (any, error) {
	rec := model.Construction{StartTime: time.Now(), Args: len(args)}
	v, err := c.construct(desc, args, &rec)
	if c.events != nil {
		rec.ID = uuid.NewString()
		rec.Err = err
		rec.Duration = time.Since(rec.StartTime)
		c.events.Publish(rec)
	}
	return v, err
}

// ConstructAny parses raw with ParseDescription and constructs it.
func (c *Creator) ConstructAny(raw any, args ...any) (any, error) {
	desc, err := ParseDescription(raw)
	if err != nil {
		return nil, err
	}
	return c.Construct(desc, args...)
}

func (c *Creator) construct(desc Description, args []any, rec *model.Construction) (any, error) {
	var (
		class string
		props Properties
	)
	switch d := desc.(type) {
	case Factory:
		if d == nil {
			return nil, fmt.Errorf("%w: nil factory", ErrInvalidDescription)
		}
		rec.Branch = model.BranchFactory
		return d()
	case Identifier:
		class = string(d)
	case Descriptor:
		var err error
		if class, props, err = d.split(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported description type %T", ErrInvalidDescription, desc)
	}

	class = Canonical(class)
	if class == "" {
		return nil, fmt.Errorf("%w: empty class identifier", ErrInvalidDescription)
	}
	merged := c.defaults.Merge(class, props)
	rec.Props = len(merged)

	cls, err := c.load(class)
	if err != nil {
		return nil, err
	}
	rec.Class = class

	if len(args) > 0 {
		pos := make([]any, 0, len(args)+1)
		pos = append(pos, args...)
		if len(merged) > 0 {
			pos = append(pos, merged)
		}
		if cls.Instance != nil {
			rec.Branch = model.BranchSingleton
			c.trace(rec)
			return cls.Instance(pos...)
		}
		rec.Branch = model.BranchArguments
		if cls.New == nil {
			return nil, &AbstractClassError{Class: class}
		}
		c.trace(rec)
		return cls.New(pos...)
	}

	rec.Branch = model.BranchConstructor
	if cls.New == nil {
		return nil, &AbstractClassError{Class: class}
	}
	c.trace(rec)
	if len(merged) > 0 {
		return cls.New(merged)
	}
	return cls.New()
}

func (c *Creator) load(class string) (*Class, error) {
	if v, ok := c.classes.Load(class); ok {
		return v.(*Class), nil
	}
	cls, err := c.loader.LoadClass(class)
	if err != nil {
		return nil, err
	}
	actual, _ := c.classes.LoadOrStore(class, cls)
	return actual.(*Class), nil
}

func (c *Creator) trace(rec *model.Construction) {
	c.log.Debugw("constructing object", map[string]any{
		"class":  rec.Class,
		"branch": rec.Branch.String(),
		"args":   rec.Args,
		"props":  rec.Props,
	})
}

// Build constructs desc and asserts the instance to T.
func Build[T any](c *Creator, desc Description, args ...any) (T, error) {
	var zero T
	v, err := c.Construct(desc, args...)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &WrongTypeError{
			Want: reflect.TypeOf((*T)(nil)).Elem().String(),
			Got:  fmt.Sprintf("%T", v),
		}
	}
	return t, nil
}
