package objectwire

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistryRegisterAndResolve(t *testing.T) {
	reg := NewTypeRegistry().Register("Point", testPoint{})
	typ, ok := reg.Resolve("Point")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(testPoint{}), typ)
}

func TestTypeRegistryRegisterDereferencesPointers(t *testing.T) {
	reg := NewTypeRegistry().RegisterType("PointPtr", reflect.TypeOf(&testPoint{}))
	typ, ok := reg.Resolve("PointPtr")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(testPoint{}), typ)
}

func TestTypeResolverDeclaredTypeWinsOverHint(t *testing.T) {
	opts := NewOptions()
	tr := newTypeResolver(opts)
	n := &Node{Type: reflect.TypeOf(testPoint{}), HintType: reflect.TypeOf(testNode{})}
	assert.Equal(t, reflect.TypeOf(testPoint{}), tr.resolve(n))
}

func TestTypeResolverFallsBackToHint(t *testing.T) {
	opts := NewOptions()
	tr := newTypeResolver(opts)
	n := &Node{HintType: reflect.TypeOf(testNode{})}
	assert.Equal(t, reflect.TypeOf(testNode{}), tr.resolve(n))
}

func TestTypeResolverAppliesCoercion(t *testing.T) {
	opts := NewOptions().WithCoercedClass(reflect.TypeOf(testPoint{}), reflect.TypeOf(testNode{}))
	tr := newTypeResolver(opts)
	n := &Node{Type: reflect.TypeOf(testPoint{})}
	assert.Equal(t, reflect.TypeOf(testNode{}), tr.resolve(n))
}

func TestTypeResolverUnknownTypeClassFallback(t *testing.T) {
	opts := NewOptions().WithUnknownTypeClass(reflect.TypeOf(testPoint{}))
	tr := newTypeResolver(opts)
	n := &Node{}
	assert.Equal(t, reflect.TypeOf(testPoint{}), tr.resolve(n))
}

func TestIsEnumKindNamedIntType(t *testing.T) {
	assert.True(t, isEnumKind(reflect.TypeOf(testStatus(0))))
	assert.False(t, isEnumKind(reflect.TypeOf(0)))
	assert.False(t, isEnumKind(reflect.TypeOf(testPoint{})))
}

func TestIsEnumSetKindSliceOfEnum(t *testing.T) {
	assert.True(t, isEnumSetKind(reflect.TypeOf([]testStatus{})))
	assert.False(t, isEnumSetKind(reflect.TypeOf([]int{})))
}

// A node naming an unregistered "sorted" type falls back to the
// insertion-order equivalent rather than straight to UnknownTypeClass.
func TestTypeResolverOrderedCollectionFallbackForUnregisteredSortedMap(t *testing.T) {
	opts := NewOptions()
	tr := newTypeResolver(opts)
	n := &Node{TypeName: "SortedMap"}
	assert.Equal(t, reflect.TypeOf(OrderedMap{}), tr.resolve(n))
}

func TestTypeResolverOrderedCollectionFallbackForUnregisteredSortedSet(t *testing.T) {
	opts := NewOptions()
	tr := newTypeResolver(opts)
	n := &Node{TypeName: "TreeSet"}
	assert.Equal(t, reflect.TypeOf(OrderedSet{}), tr.resolve(n))
}

// UnknownTypeClass still wins for a type name the fallback table doesn't
// know about, and the fallback never applies once a declared/hint type
// did resolve.
func TestTypeResolverOrderedCollectionFallbackOnlyForUnresolvedType(t *testing.T) {
	opts := NewOptions().WithUnknownTypeClass(reflect.TypeOf(testPoint{}))
	tr := newTypeResolver(opts)
	assert.Equal(t, reflect.TypeOf(testPoint{}), tr.resolve(&Node{TypeName: "SomeUnrelatedThing"}))
	assert.Equal(t, reflect.TypeOf(testNode{}), tr.resolve(&Node{TypeName: "SortedMap", HintType: reflect.TypeOf(testNode{})}))
}
