package json

import (
	"bytes"
	"testing"

	wire "github.com/objectwire/objectwire/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSourceDecodesObjectShape(t *testing.T) {
	src := NewBytes([]byte(`{"a":1,"b":[1,2,3],"c":true,"d":null}`))

	v, err := wire.DecodeValue(src)
	require.NoError(t, err)
	require.Equal(t, wire.ValueObject, v.Kind)
	assert.Equal(t, []string{"a", "b", "c", "d"}, v.Object.Order)
	bv := v.Object.Fields["b"]
	assert.Equal(t, wire.ValueArray, bv.Kind)
	assert.Len(t, bv.Array, 3)
}

func TestJSONSourceDecodesReservedKeys(t *testing.T) {
	src := NewBytes([]byte(`{"@id":1,"@type":"Point","x":3,"y":4}`))

	v, err := wire.DecodeValue(src)
	require.NoError(t, err)
	require.Equal(t, wire.ValueObject, v.Kind)
	require.NotNil(t, v.Object.ID)
	assert.EqualValues(t, 1, *v.Object.ID)
	assert.Equal(t, "Point", v.Object.Type)
	assert.NotContains(t, v.Object.Order, "@id")
	assert.NotContains(t, v.Object.Order, "@type")
}

func TestJSONSourcePreservesNumberLiteralAndTracksOffset(t *testing.T) {
	src := NewReader(bytes.NewReader([]byte(`3.140000`)))
	tok, err := src.NextToken()
	require.NoError(t, err)
	assert.Equal(t, wire.KindNumber, tok.Kind)
	assert.Equal(t, "3.140000", tok.Number)
	assert.Greater(t, src.Location(), int64(0))
}
