package wire_test

import (
	"testing"

	jsonsrc "github.com/objectwire/objectwire/source/json"
	wire "github.com/objectwire/objectwire/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithEnforcementRejectsDuplicateKeyOnError(t *testing.T) {
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":1,"a":2}`)), wire.EnforceOptions{OnDuplicate: wire.DupError})
	_, err := wire.DecodeValue(src)
	require.Error(t, err)
	ie, ok := err.(wire.IssueError)
	require.True(t, ok)
	assert.Equal(t, "duplicate_key", ie.Code)
}

func TestWrapWithEnforcementCollectsDuplicateKeyOnWarn(t *testing.T) {
	var collected []wire.SimpleIssue
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":1,"a":2}`)), wire.EnforceOptions{
		OnDuplicate: wire.DupWarn,
		IssueSink:   func(si wire.SimpleIssue) { collected = append(collected, si) },
	})
	_, err := wire.DecodeValue(src)
	require.NoError(t, err)
	require.Len(t, collected, 1)
	assert.Equal(t, "duplicate_key", collected[0].Code)
}

func TestWrapWithEnforcementIgnoresDuplicateKeyByDefault(t *testing.T) {
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":1,"a":2}`)), wire.EnforceOptions{OnDuplicate: wire.DupIgnore})
	_, err := wire.DecodeValue(src)
	require.NoError(t, err)
}

func TestWrapWithEnforcementRejectsExcessiveDepth(t *testing.T) {
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":{"b":{"c":1}}}`)), wire.EnforceOptions{MaxDepth: 2})
	_, err := wire.DecodeValue(src)
	require.Error(t, err)
	ie, ok := err.(wire.IssueError)
	require.True(t, ok)
	assert.Equal(t, "parse_error", ie.Code)
}

func TestWrapWithEnforcementRejectsExcessiveBytes(t *testing.T) {
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(`{"a":"some longer string value"}`)), wire.EnforceOptions{MaxBytes: 5})
	_, err := wire.DecodeValue(src)
	require.Error(t, err)
	ie, ok := err.(wire.IssueError)
	require.True(t, ok)
	assert.Equal(t, "truncated", ie.Code)
}

func TestDetectJSONDuplicateKeysBytesFindsNestedDuplicate(t *testing.T) {
	issues, err := wire.DetectJSONDuplicateKeysBytes([]byte(`{"outer":{"x":1,"x":2}}`), wire.DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "duplicate_key", issues[0].Code)
}

func TestDetectJSONDuplicateKeysBytesIgnoredWhenDupIgnore(t *testing.T) {
	issues, err := wire.DetectJSONDuplicateKeysBytes([]byte(`{"x":1,"x":2}`), wire.DupIgnore, -1)
	require.NoError(t, err)
	assert.Nil(t, issues)
}

func TestDetectJSONDuplicateKeysBytesStopsAtMaxIssues(t *testing.T) {
	issues, err := wire.DetectJSONDuplicateKeysBytes([]byte(`{"a":1,"a":2,"b":3,"b":4}`), wire.DupWarn, 1)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(issues), 2)
	assert.Equal(t, "truncated", issues[len(issues)-1].Code)
}

func TestWrapWithEnforcementRejectsDuplicateIDOnError(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(doc)), wire.EnforceOptions{OnDuplicateID: wire.DupError})
	_, err := wire.DecodeValue(src)
	require.Error(t, err)
	ie, ok := err.(wire.IssueError)
	require.True(t, ok)
	assert.Equal(t, "duplicate_id", ie.Code)
}

func TestWrapWithEnforcementIgnoresDistinctIDs(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":2,"a":2}]`
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(doc)), wire.EnforceOptions{OnDuplicateID: wire.DupError})
	_, err := wire.DecodeValue(src)
	require.NoError(t, err)
}

func TestWrapWithEnforcementDuplicateIDIndependentOfDuplicateKey(t *testing.T) {
	// Two distinct objects may each use the field name "a" without
	// tripping OnDuplicate, which is scoped per-object; only the
	// document-wide "@id" repeat should fault here.
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	src := wire.WrapWithEnforcement(jsonsrc.NewBytes([]byte(doc)), wire.EnforceOptions{
		OnDuplicate:   wire.DupError,
		OnDuplicateID: wire.DupError,
	})
	_, err := wire.DecodeValue(src)
	require.Error(t, err)
	ie, ok := err.(wire.IssueError)
	require.True(t, ok)
	assert.Equal(t, "duplicate_id", ie.Code)
}

func TestDetectJSONDuplicateIDsBytesFindsDuplicateAcrossObjects(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	issues, err := wire.DetectJSONDuplicateIDsBytes([]byte(doc), wire.DupWarn, -1)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "duplicate_id", issues[0].Code)
}

func TestDetectJSONDuplicateIDsBytesIgnoredWhenDupIgnore(t *testing.T) {
	doc := `[{"@id":1,"a":1},{"@id":1,"a":2}]`
	issues, err := wire.DetectJSONDuplicateIDsBytes([]byte(doc), wire.DupIgnore, -1)
	require.NoError(t, err)
	assert.Nil(t, issues)
}
