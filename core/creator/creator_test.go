package creator_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/creator/core/creator"
	"github.com/kilianp07/creator/core/model"
)

type car struct {
	Color string `json:"color"`
	Doors int    `json:"doors"`
}

// recorder keeps the positional arguments its constructor received.
type recorder struct{ args []any }

type service struct {
	ID    int
	Props creator.Properties
}

type events struct {
	mu   sync.Mutex
	recs []model.Construction
}

func (e *events) Publish(r model.Construction) {
	e.mu.Lock()
	e.recs = append(e.recs, r)
	e.mu.Unlock()
}

func (e *events) last() model.Construction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recs[len(e.recs)-1]
}

func newTestCreator(t *testing.T, opts ...creator.Option) *creator.Creator {
	t.Helper()
	reg := creator.NewRegistry()
	reg.MustRegister(creator.Class{
		Name: `shop\Car`,
		New:  creator.NewConfigurable(func() *car { return &car{} }),
	})
	reg.MustRegister(creator.Class{
		Name: `shop\Recorder`,
		New: func(args ...any) (any, error) {
			return &recorder{args: args}, nil
		},
	})
	reg.MustRegister(creator.Class{
		Name: `shop\Service`,
		New: func(args ...any) (any, error) {
			return &service{}, nil
		},
		Instance: creator.Singleton(func(args ...any) (any, error) {
			id, err := creator.Arg[int](args, 0)
			if err != nil {
				return nil, err
			}
			s := &service{ID: id}
			if len(args) > 1 {
				s.Props, _ = args[1].(creator.Properties)
			}
			return s, nil
		}),
	})
	reg.MustRegister(creator.Class{Name: `shop\Vehicle`})
	return creator.New(reg, opts...)
}

func TestConstruct_DescriptorPropertiesApplied(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	v, err := c.Construct(creator.Descriptor{"class": `shop\Car`, "color": "green", "doors": 5})
	require.NoError(t, err)
	assert.Equal(t, &car{Color: "green", Doors: 5}, v)
}

func TestConstruct_DefaultsOverlay(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	c.Defaults().Set(`shop\Car`, creator.Properties{"color": "red", "doors": 3})

	v, err := c.Construct(creator.Identifier(`shop\Car`))
	require.NoError(t, err)
	assert.Equal(t, &car{Color: "red", Doors: 3}, v)

	v, err = c.Construct(creator.Descriptor{"class": `shop\Car`, "color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, &car{Color: "blue", Doors: 3}, v)

	got, _ := c.Defaults().Get(`shop\Car`)
	assert.Equal(t, creator.Properties{"color": "red", "doors": 3}, got, "defaults must not be mutated")
}

func TestConstruct_DescriptorNotMutated(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	desc := creator.Descriptor{"class": `shop\Car`, "color": "blue"}

	_, err := c.Construct(desc)
	require.NoError(t, err)
	assert.Equal(t, creator.Descriptor{"class": `shop\Car`, "color": "blue"}, desc)
}

func TestConstruct_LeadingSeparatorIsCanonicalized(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	c.Defaults().Set(`\shop\Car`, creator.Properties{"color": "red"})

	v, err := c.Construct(creator.Identifier(`\\shop\Car`))
	require.NoError(t, err)
	assert.Equal(t, "red", v.(*car).Color)
}

func TestConstruct_FactoryBypassesDefaults(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	c.Defaults().Set(`shop\Car`, creator.Properties{"color": "red"})
	want := &car{Color: "plain"}

	v, err := c.Construct(creator.Factory(func() (any, error) { return want, nil }), "ignored")
	require.NoError(t, err)
	assert.Same(t, want, v)
	assert.Equal(t, "plain", want.Color)
}

func TestConstruct_FactoryErrorPropagates(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	boom := errors.New("boom")

	_, err := c.Construct(creator.Factory(func() (any, error) { return nil, boom }))
	assert.Same(t, boom, err)
}

func TestConstruct_ExtraArgumentsArePositional(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	v, err := c.Construct(creator.Identifier(`shop\Recorder`), "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", 2}, v.(*recorder).args)

	c.Defaults().Set(`shop\Recorder`, creator.Properties{"size": 1})
	v, err = c.Construct(creator.Descriptor{"class": `shop\Recorder`, "name": "x"}, "a")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", creator.Properties{"size": 1, "name": "x"}}, v.(*recorder).args)
}

func TestConstruct_NoArgumentsPassesBagOrNothing(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	v, err := c.Construct(creator.Identifier(`shop\Recorder`))
	require.NoError(t, err)
	assert.Empty(t, v.(*recorder).args)

	v, err = c.Construct(creator.Descriptor{"class": `shop\Recorder`, "k": "v"})
	require.NoError(t, err)
	assert.Equal(t, []any{creator.Properties{"k": "v"}}, v.(*recorder).args)
}

func TestConstruct_SingletonIdempotence(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	first, err := c.Construct(creator.Descriptor{"class": `shop\Service`}, 1)
	require.NoError(t, err)
	second, err := c.Construct(creator.Descriptor{"class": `shop\Service`}, 2)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, second.(*service).ID)

	fresh, err := c.Construct(creator.Identifier(`shop\Service`))
	require.NoError(t, err)
	assert.NotSame(t, first, fresh, "without arguments the ordinary constructor is used")
}

func TestConstruct_SingletonReceivesMergedBag(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	c.Defaults().Set(`shop\Service`, creator.Properties{"region": "eu"})

	v, err := c.Construct(creator.Descriptor{"class": `shop\Service`, "tier": 2}, 7)
	require.NoError(t, err)
	assert.Equal(t, creator.Properties{"region": "eu", "tier": 2}, v.(*service).Props)
}

func TestConstruct_SingletonFailureIsNotCached(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	_, err := c.Construct(creator.Identifier(`shop\Service`), "not an int")
	var argErr *creator.ArgumentError
	require.ErrorAs(t, err, &argErr)

	v, err := c.Construct(creator.Identifier(`shop\Service`), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v.(*service).ID)
}

func TestConstruct_InvalidDescriptions(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	cases := map[string]creator.Description{
		"empty descriptor":  creator.Descriptor{},
		"non-string class":  creator.Descriptor{"class": 42},
		"empty identifier":  creator.Identifier(""),
		"only separators":   creator.Identifier(`\\`),
		"nil factory":       creator.Factory(nil),
		"nil description":   nil,
		"empty class entry": creator.Descriptor{"class": ""},
	}
	for name, desc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Construct(desc)
			assert.ErrorIs(t, err, creator.ErrInvalidDescription)
		})
	}
}

func TestConstruct_UnknownAndAbstractClasses(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	_, err := c.Construct(creator.Identifier(`shop\Boat`))
	assert.ErrorIs(t, err, creator.ErrUnknownClass)
	var unknown *creator.UnknownClassError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, `shop\Boat`, unknown.Class)

	_, err = c.Construct(creator.Identifier(`shop\Vehicle`))
	assert.ErrorIs(t, err, creator.ErrAbstractClass)
	_, err = c.Construct(creator.Identifier(`shop\Vehicle`), 1)
	assert.ErrorIs(t, err, creator.ErrAbstractClass)
}

func TestConstruct_ConstructorErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	_, err := c.Construct(creator.Descriptor{"class": `shop\Car`, "wheels": 4})
	require.Error(t, err)
	assert.NotErrorIs(t, err, creator.ErrInvalidDescription)
}

type countingLoader struct {
	mu    sync.Mutex
	calls map[string]int
	reg   *creator.Registry
}

func (l *countingLoader) LoadClass(name string) (*creator.Class, error) {
	l.mu.Lock()
	l.calls[name]++
	l.mu.Unlock()
	return l.reg.LoadClass(name)
}

func TestConstruct_ClassLookupIsMemoized(t *testing.T) {
	t.Parallel()
	reg := creator.NewRegistry()
	reg.MustRegister(creator.Class{Name: "Car", New: creator.NewConfigurable(func() *car { return &car{} })})
	loader := &countingLoader{calls: map[string]int{}, reg: reg}
	c := creator.New(loader)

	for i := 0; i < 3; i++ {
		_, err := c.Construct(creator.Identifier(`\Car`))
		require.NoError(t, err)
	}
	_, _ = c.Construct(creator.Identifier("Boat"))
	_, _ = c.Construct(creator.Identifier("Boat"))

	assert.Equal(t, 1, loader.calls["Car"])
	assert.Equal(t, 2, loader.calls["Boat"], "failed lookups are retried")
}

func TestConstruct_PublishesConstructions(t *testing.T) {
	t.Parallel()
	ev := &events{}
	c := newTestCreator(t, creator.WithEvents(ev))

	_, err := c.Construct(creator.Descriptor{"class": `\shop\Car`, "color": "red"})
	require.NoError(t, err)
	rec := ev.last()
	assert.Equal(t, `shop\Car`, rec.Class)
	assert.Equal(t, model.BranchConstructor, rec.Branch)
	assert.Equal(t, 1, rec.Props)
	assert.NotEmpty(t, rec.ID)
	assert.True(t, rec.Succeeded())

	_, _ = c.Construct(creator.Identifier(`shop\Service`), 9)
	assert.Equal(t, model.BranchSingleton, ev.last().Branch)

	_, _ = c.Construct(creator.Identifier(`shop\Recorder`), 9)
	assert.Equal(t, model.BranchArguments, ev.last().Branch)

	_, err = c.Construct(creator.Identifier(`shop\Vehicle`))
	require.ErrorIs(t, err, creator.ErrAbstractClass)
	assert.Equal(t, `shop\Vehicle`, ev.last().Class)
	assert.Equal(t, model.BranchConstructor, ev.last().Branch)

	_, _ = c.Construct(creator.Factory(func() (any, error) { return 1, nil }))
	assert.Equal(t, model.BranchFactory, ev.last().Branch)
	assert.Empty(t, ev.last().Class)
}

func TestConstruct_PublishesUnresolvedFailures(t *testing.T) {
	t.Parallel()
	ev := &events{}
	c := newTestCreator(t, creator.WithEvents(ev))

	failures := []creator.Description{
		creator.Identifier(`no\Such`),
		creator.Descriptor{},
		creator.Identifier(""),
		creator.Factory(nil),
	}
	for _, desc := range failures {
		_, err := c.Construct(desc)
		require.Error(t, err)
		rec := ev.last()
		assert.False(t, rec.Succeeded())
		assert.Equal(t, model.BranchUnresolved, rec.Branch, "%v", desc)
		assert.Empty(t, rec.Class, "unknown identifiers must not become metric labels")
	}
}

func TestConstruct_Concurrent(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)
	c.Defaults().Set(`shop\Car`, creator.Properties{"doors": 2})

	var wg sync.WaitGroup
	singletons := make([]any, 16)
	for i := range singletons {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Construct(creator.Descriptor{"class": `shop\Car`, "color": fmt.Sprint(i)})
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprint(i), v.(*car).Color)
			singletons[i], err = c.Construct(creator.Identifier(`shop\Service`), i)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	for _, s := range singletons[1:] {
		assert.Same(t, singletons[0], s)
	}
}

func TestConstructAny(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	v, err := c.ConstructAny(map[string]any{"class": `shop\Car`, "doors": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, v.(*car).Doors)

	v, err = c.ConstructAny(func() any { return "made" })
	require.NoError(t, err)
	assert.Equal(t, "made", v)

	_, err = c.ConstructAny(12)
	assert.ErrorIs(t, err, creator.ErrInvalidDescription)
}

func TestBuild(t *testing.T) {
	t.Parallel()
	c := newTestCreator(t)

	got, err := creator.Build[*car](c, creator.Descriptor{"class": `shop\Car`, "color": "blue"})
	require.NoError(t, err)
	assert.Equal(t, "blue", got.Color)

	_, err = creator.Build[*service](c, creator.Identifier(`shop\Car`))
	var wrong *creator.WrongTypeError
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, "*creator_test.service", wrong.Want)
	assert.Equal(t, "*creator_test.car", wrong.Got)
}

func TestConstruct_ConstructorCannotMutateDefaults(t *testing.T) {
	t.Parallel()
	reg := creator.NewRegistry()
	reg.MustRegister(creator.Class{
		Name: "Car",
		New: func(args ...any) (any, error) {
			bag := args[0].(creator.Properties)
			bag["engine"].(map[string]any)["hp"] = 999
			return bag, nil
		},
	})
	c := creator.New(reg)
	c.Defaults().Set("Car", creator.Properties{"engine": map[string]any{"hp": 100}})

	_, err := c.Construct(creator.Identifier("Car"))
	require.NoError(t, err)

	got, _ := c.Defaults().Get("Car")
	assert.Equal(t, creator.Properties{"engine": map[string]any{"hp": 100}}, got)
}
