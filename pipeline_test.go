package objectwire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type normalizingPoint struct {
	X, Y int
}

func (p *normalizingPoint) Normalize(ctx context.Context) (any, error) {
	p.X, p.Y = p.X*10, p.Y*10
	return p, nil
}

type refiningPoint struct {
	X, Y int
}

func (p *refiningPoint) Refine(ctx context.Context) error {
	if p.X < 0 {
		return Issues{{Code: CodeInstantiationFailure, Message: "x must be non-negative"}}
	}
	return nil
}

func TestResolveRunsNormalizeHookOnRoot(t *testing.T) {
	reg := NewTypeRegistry().Register("P", normalizingPoint{})
	opts := NewOptions().WithTypeRegistry(reg)
	v, err := ResolveJSONBytes(context.Background(), []byte(`{"@type":"P","X":1,"Y":2}`), nil, opts)
	require.NoError(t, err)
	p := v.(*normalizingPoint)
	assert.Equal(t, 10, p.X)
	assert.Equal(t, 20, p.Y)
}

func TestResolveRunsRefineHookAndSurfacesFailure(t *testing.T) {
	reg := NewTypeRegistry().Register("R", refiningPoint{})
	opts := NewOptions().WithTypeRegistry(reg)
	_, err := ResolveJSONBytes(context.Background(), []byte(`{"@type":"R","X":-1,"Y":2}`), nil, opts)
	require.Error(t, err)
	iss, ok := AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, CodeInstantiationFailure, iss[0].Code)
}

func TestApplyNormalizeNoopForNonImplementor(t *testing.T) {
	v, err := applyNormalize(context.Background(), "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", v)
}

func TestApplyRefineNoopForNonImplementor(t *testing.T) {
	err := applyRefine(context.Background(), "plain")
	require.NoError(t, err)
}
