package objectwire

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryRegistryLookupDereferencesPointer(t *testing.T) {
	fr := NewFactoryRegistry()
	f := FactoryFunc(func(ctx context.Context, n *Node, r *Resolver) (any, error) { return nil, nil })
	fr.Register(reflect.TypeOf(&testPoint{}), f)

	_, ok := fr.Lookup(reflect.TypeOf(testPoint{}))
	assert.True(t, ok)
	_, ok = fr.Lookup(reflect.TypeOf(&testPoint{}))
	assert.True(t, ok)
}

func TestFactoryRegistryLookupMissingReturnsFalse(t *testing.T) {
	fr := NewFactoryRegistry()
	_, ok := fr.Lookup(reflect.TypeOf(testPoint{}))
	assert.False(t, ok)
}

func TestFactoryFuncObjectFinalIsFalse(t *testing.T) {
	f := FactoryFunc(func(ctx context.Context, n *Node, r *Resolver) (any, error) { return nil, nil })
	assert.False(t, f.ObjectFinal())
}

func TestFinalFactoryFuncObjectFinalIsTrue(t *testing.T) {
	f := FinalFactoryFunc(func(ctx context.Context, n *Node, r *Resolver) (any, error) { return nil, nil })
	assert.True(t, f.ObjectFinal())
}

func TestGatherRemainingValuesSkipsExcludedAndPreservesOrder(t *testing.T) {
	root, refs, err := BuildTree_testHelper(`{"a":1,"b":2,"c":3}`)
	require.NoError(t, err)
	opts := NewOptions()
	r := newResolver(opts, refs)

	vals, err := r.opts.factoryRegistry().GatherRemainingValues(context.Background(), root, r, map[string]struct{}{"b": {}})
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.Equal(t, []any{json.Number("1"), json.Number("3")}, vals)
}

func TestGatherRemainingValuesFailsOnForwardReference(t *testing.T) {
	root, refs, err := BuildTree_testHelper(`{"a":{"@ref":5}}`)
	require.NoError(t, err)
	opts := NewOptions()
	r := newResolver(opts, refs)

	_, err = r.opts.factoryRegistry().GatherRemainingValues(context.Background(), root, r, nil)
	require.Error(t, err)
}

type testPricedItem struct {
	Name  string
	Total int
}

// TestFactoryUsesInjectedServiceAndGatherRemainingValues exercises the
// full constructor-injection path: a FinalFactoryFunc that pulls a rate
// function out of the context via RequireService and feeds it the raw
// field values GatherRemainingValues collects, mirroring a non-default
// constructor driven entirely by the wire document.
func TestFactoryUsesInjectedServiceAndGatherRemainingValues(t *testing.T) {
	reg := NewTypeRegistry().Register("Priced", testPricedItem{})
	factory := FinalFactoryFunc(func(ctx context.Context, n *Node, r *Resolver) (any, error) {
		vals, err := r.GatherRemainingValues(ctx, n, nil)
		if err != nil {
			return nil, err
		}
		rate, err := RequireService[func(float64) int](ctx)
		if err != nil {
			return nil, err
		}
		name, _ := vals[0].(string)
		num, _ := vals[1].(json.Number)
		amount, _ := num.Float64()
		return &testPricedItem{Name: name, Total: rate(amount)}, nil
	})
	opts := NewOptions().WithTypeRegistry(reg).WithFactory(reflect.TypeOf(testPricedItem{}), factory)

	ctx := WithService(context.Background(), func(amount float64) int { return int(amount) * 2 })
	v, err := ResolveJSONBytes(ctx, []byte(`{"@type":"Priced","Name":"widget","Amount":21}`), nil, opts)
	require.NoError(t, err)
	item, ok := v.(*testPricedItem)
	require.True(t, ok)
	assert.Equal(t, "widget", item.Name)
	assert.Equal(t, 42, item.Total)
}

func TestRequireServiceFailsWithoutInjection(t *testing.T) {
	_, err := RequireService[func(float64) int](context.Background())
	require.Error(t, err)
	iss, ok := AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, CodeDependencyUnavailable, iss[0].Code)
}
