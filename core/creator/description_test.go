package creator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/creator/core/creator"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, `Foo\Bar`, creator.Canonical(`\Foo\Bar`))
	assert.Equal(t, `Foo\Bar`, creator.Canonical(`\\\Foo\Bar`))
	assert.Equal(t, `Foo\Bar\`, creator.Canonical(`Foo\Bar\`))
	assert.Empty(t, creator.Canonical(`\`))
}

func TestParseDescription(t *testing.T) {
	d, err := creator.ParseDescription("Car")
	require.NoError(t, err)
	assert.Equal(t, creator.Identifier("Car"), d)

	d, err = creator.ParseDescription(map[string]any{"class": "Car"})
	require.NoError(t, err)
	assert.Equal(t, creator.Descriptor{"class": "Car"}, d)

	d, err = creator.ParseDescription(func() (any, error) { return 1, nil })
	require.NoError(t, err)
	f, ok := d.(creator.Factory)
	require.True(t, ok)
	v, err := f()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	for _, raw := range []any{nil, 3, []string{"Car"}} {
		_, err := creator.ParseDescription(raw)
		assert.ErrorIs(t, err, creator.ErrInvalidDescription, "%v", raw)
	}
}
