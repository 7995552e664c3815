package objectwire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectJSONDuplicateKeysBytesNoDup(t *testing.T) {
	iss, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"b":2}`), Strictness{OnDuplicateKey: SeverityWarn}, -1)
	require.NoError(t, err)
	assert.Empty(t, iss)
}

func TestDetectJSONDuplicateKeysBytesWithDup(t *testing.T) {
	iss, err := DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2}`), Strictness{OnDuplicateKey: SeverityWarn}, -1)
	require.NoError(t, err)
	require.NotEmpty(t, iss)
	assert.Equal(t, CodeDuplicateKey, iss[0].Code)
}

func TestDetectJSONDuplicateIDsBytesNoDup(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":2,"a":2}]`
	iss, err := DetectJSONDuplicateIDsBytes([]byte(doc), Strictness{OnDuplicateID: SeverityWarn}, -1)
	require.NoError(t, err)
	assert.Empty(t, iss)
}

func TestDetectJSONDuplicateIDsBytesWithDup(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	iss, err := DetectJSONDuplicateIDsBytes([]byte(doc), Strictness{OnDuplicateID: SeverityWarn}, -1)
	require.NoError(t, err)
	require.NotEmpty(t, iss)
	assert.Equal(t, CodeDuplicateID, iss[0].Code)
}

// Resolve itself fails fast on a duplicate "@id" once Strictness asks for
// it, ahead of referenceTable.put's unconditional post-tree-build check.
func TestResolveFailsFastOnDuplicateIDWhenStrict(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	opts := NewOptions().WithStrictness(Strictness{OnDuplicateID: SeverityError})
	_, err := ResolveJSONBytes(context.Background(), []byte(doc), nil, opts)
	require.Error(t, err)
	iss, ok := AsIssues(err)
	require.True(t, ok)
	require.NotEmpty(t, iss)
	assert.Equal(t, CodeDuplicateID, iss[0].Code)
}
