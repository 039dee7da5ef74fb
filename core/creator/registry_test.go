package creator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/creator/core/creator"
)

func TestRegistry_RegisterCanonicalizes(t *testing.T) {
	reg := creator.NewRegistry()
	require.NoError(t, reg.Register(creator.Class{
		Name:   `\app\Car`,
		Parent: `\app\Vehicle`,
		Mixins: []string{`\mixin\Paint`, "", `mixin\Wheels`},
	}))

	cls, err := reg.LoadClass(`app\Car`)
	require.NoError(t, err)
	assert.Equal(t, `app\Car`, cls.Name)
	assert.Equal(t, `app\Vehicle`, cls.Parent)
	assert.Equal(t, []string{`mixin\Paint`, `mixin\Wheels`}, cls.Mixins)
	assert.True(t, cls.IsAbstract())
	assert.False(t, cls.IsSingleton())
}

func TestRegistry_Errors(t *testing.T) {
	reg := creator.NewRegistry()
	assert.ErrorIs(t, reg.Register(creator.Class{Name: `\`}), creator.ErrEmptyClassName)
	assert.ErrorIs(t, reg.RegisterMixin(creator.Mixin{}), creator.ErrEmptyClassName)

	require.NoError(t, reg.Register(creator.Class{Name: "A"}))
	assert.ErrorIs(t, reg.Register(creator.Class{Name: `\A`}), creator.ErrDuplicateClass)
	assert.ErrorIs(t, reg.RegisterMixin(creator.Mixin{Name: "A"}), creator.ErrDuplicateClass)

	require.NoError(t, reg.RegisterMixin(creator.Mixin{Name: "M"}))
	assert.ErrorIs(t, reg.Register(creator.Class{Name: "M"}), creator.ErrDuplicateClass)
	_, err := reg.LoadClass("M")
	assert.ErrorIs(t, err, creator.ErrUnknownClass, "mixins cannot be constructed")

	assert.Panics(t, func() { reg.MustRegister(creator.Class{Name: "A"}) })
}

func TestRegistry_DescribeAndListing(t *testing.T) {
	reg := creator.NewRegistry()
	reg.MustRegister(creator.Class{Name: "B", Parent: "A", Mixins: []string{"M"}})
	reg.MustRegister(creator.Class{Name: "A"})
	require.NoError(t, reg.RegisterMixin(creator.Mixin{Name: "M", Uses: []string{`\N`}}))

	parent, uses, ok := reg.Describe(`\B`)
	require.True(t, ok)
	assert.Equal(t, "A", parent)
	assert.Equal(t, []string{"M"}, uses)
	uses[0] = "changed"
	_, again, _ := reg.Describe("B")
	assert.Equal(t, []string{"M"}, again)

	parent, uses, ok = reg.Describe("M")
	require.True(t, ok)
	assert.Empty(t, parent)
	assert.Equal(t, []string{"N"}, uses)

	_, _, ok = reg.Describe("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"A", "B"}, reg.Classes())
	assert.Equal(t, []string{"M"}, reg.Mixins())
}

func TestRegistry_IsMixin(t *testing.T) {
	reg := creator.NewRegistry()
	reg.MustRegister(creator.Class{Name: "A"})
	require.NoError(t, reg.RegisterMixin(creator.Mixin{Name: "M"}))

	assert.True(t, reg.IsMixin(`\M`))
	assert.False(t, reg.IsMixin("A"))
	assert.False(t, reg.IsMixin("missing"))
}
