package objectwire

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionsHasWorkingDefaults(t *testing.T) {
	o := NewOptions()
	require.NotNil(t, o.factoryRegistry())
	require.NotNil(t, o.typeReg())
	require.NotNil(t, o.scalarConverter())
}

func TestOptionsFluentBuilderChaining(t *testing.T) {
	var diagnosed []Issue
	o := NewOptions().
		WithMaxDepth(10).
		WithMaxBytes(1024).
		WithReturningJSONObjects(true).
		WithStrictness(Strictness{OnDuplicateKey: SeverityError}).
		WithDiagnostics(func(i Issue) { diagnosed = append(diagnosed, i) })

	assert.Equal(t, 10, o.MaxDepth)
	assert.EqualValues(t, 1024, o.MaxBytes)
	assert.True(t, o.ReturningJSONObjects)
	assert.Equal(t, SeverityError, o.Strictness.OnDuplicateKey)

	o.diagnose(nil, Issue{Code: CodeParseError})
	require.Len(t, diagnosed, 1)
	assert.Equal(t, CodeParseError, diagnosed[0].Code)
}

func TestOptionsWithCoercedClassAccumulates(t *testing.T) {
	o := NewOptions().
		WithCoercedClass(reflect.TypeOf(testPoint{}), reflect.TypeOf(testNode{})).
		WithCoercedClass(reflect.TypeOf(testNode{}), reflect.TypeOf(testPoint{}))

	assert.Len(t, o.CoercedClasses, 2)
}

func TestOptionsWithDiagnosticsNilIsNoop(t *testing.T) {
	o := NewOptions()
	require.NotPanics(t, func() { o.diagnose(nil, Issue{}) })
}
