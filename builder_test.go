package objectwire

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wire "github.com/objectwire/objectwire/internal/wire"
	jsonsrc "github.com/objectwire/objectwire/source/json"
)

// BuildTree_testHelper decodes a JSON document straight to a Node tree
// without going through Resolve, for tests that exercise the builder or
// want a raw tree to drive a Resolver by hand.
func BuildTree_testHelper(doc string) (*Node, *referenceTable, error) {
	src := jsonsrc.NewBytes([]byte(doc))
	wv, err := wire.DecodeValue(src)
	if err != nil {
		return nil, nil, err
	}
	return BuildTree(wv, NewTypeRegistry(), nil)
}

func TestBuildTreeResolvesDeclaredType(t *testing.T) {
	reg := NewTypeRegistry().Register("Point", testPoint{})
	src := jsonsrc.NewBytes([]byte(`{"@type":"Point","x":1,"y":2}`))
	wv, err := wire.DecodeValue(src)
	require.NoError(t, err)

	root, _, err := BuildTree(wv, reg, nil)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(testPoint{}), root.Type)
	assert.True(t, root.IsRecord())
}

func TestBuildTreeRegistersIDsDuringBuild(t *testing.T) {
	root, refs, err := BuildTree_testHelper(`[{"@id":1,"a":1},{"@id":2,"a":2}]`)
	require.NoError(t, err)
	require.True(t, root.IsArrayShape())

	n1, ok := refs.resolve(1)
	require.True(t, ok)
	n2, ok := refs.resolve(2)
	require.True(t, ok)
	assert.NotSame(t, n1, n2)
}

func TestBuildTreeDetectsDuplicateID(t *testing.T) {
	_, _, err := BuildTree_testHelper(`[{"@id":1,"a":1},{"@id":1,"a":2}]`)
	require.Error(t, err)
	iss, ok := AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, CodeCorruptNode, iss[0].Code)
}

func TestBuildTreeMapShapeCarriesKeysAndItems(t *testing.T) {
	root, _, err := BuildTree_testHelper(`{"@keys":["a"],"@items":[1]}`)
	require.NoError(t, err)
	assert.True(t, root.IsMap())
	require.Len(t, root.Keys, 1)
	require.Len(t, root.Items, 1)
}

func TestBuildTreePureAliasCarriesNoContent(t *testing.T) {
	root, _, err := BuildTree_testHelper(`{"@ref":1}`)
	require.NoError(t, err)
	assert.True(t, root.IsReference())
	assert.Nil(t, root.Fields)
}
