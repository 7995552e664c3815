package dsl

import (
	"context"
	"reflect"
	"testing"

	objectwire "github.com/objectwire/objectwire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int
	Y int
}

func TestOptionsBuilderBuildsOptions(t *testing.T) {
	opts := NewOptions().
		WithMaxDepth(5).
		WithReturningJSONObjects(true).
		Build()

	require.NotNil(t, opts)
	assert.Equal(t, 5, opts.MaxDepth)
	assert.True(t, opts.ReturningJSONObjects)
}

func TestOptionsBuilderWithCoercedClass(t *testing.T) {
	from := reflect.TypeOf(point{})
	to := reflect.TypeOf(map[string]any{})
	opts := NewOptions().WithCoercedClass(from, to).Build()

	assert.Equal(t, to, opts.CoercedClasses[from])
}

func TestOptionsBuilderWithTypeRegistry(t *testing.T) {
	reg := objectwire.NewTypeRegistry().Register("Point", point{})
	opts := NewOptions().WithTypeRegistry(reg).Build()

	v, err := objectwire.ResolveJSONBytes(context.Background(), []byte(`{"@type":"Point","X":1,"Y":2}`), nil, opts)
	require.NoError(t, err)
	p, ok := v.(*point)
	require.True(t, ok)
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 2, p.Y)
}
