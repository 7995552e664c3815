package yaml

import (
	"io"
	"testing"

	wire "github.com/objectwire/objectwire/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLSourceProducesSameTokensAsJSONShape(t *testing.T) {
	src, err := NewBytes([]byte("a: 1\nb: [1, 2, 3]\nc: true\nd: null\n"))
	require.NoError(t, err)

	v, err := wire.DecodeValue(src)
	require.NoError(t, err)
	require.Equal(t, wire.ValueObject, v.Kind)
	assert.Contains(t, v.Object.Order, "a")
	assert.Contains(t, v.Object.Order, "b")
	bv := v.Object.Fields["b"]
	assert.Equal(t, wire.ValueArray, bv.Kind)
	assert.Len(t, bv.Array, 3)
}

func TestYAMLSourceDecodesReservedKeys(t *testing.T) {
	src, err := NewBytes([]byte("'@id': 1\n'@type': Point\nx: 3\ny: 4\n"))
	require.NoError(t, err)

	v, err := wire.DecodeValue(src)
	require.NoError(t, err)
	require.Equal(t, wire.ValueObject, v.Kind)
	require.NotNil(t, v.Object.ID)
	assert.EqualValues(t, 1, *v.Object.ID)
	assert.Equal(t, "Point", v.Object.Type)
}

func TestYAMLSourceEOFAfterDocument(t *testing.T) {
	src, err := NewBytes([]byte("a: 1\n"))
	require.NoError(t, err)
	_, err = wire.DecodeValue(src)
	require.NoError(t, err)
	_, err = src.NextToken()
	assert.ErrorIs(t, err, io.EOF)
}
