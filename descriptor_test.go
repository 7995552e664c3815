package objectwire

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type descTarget struct {
	Name    string `objectwire:"name=full_name"`
	Age     int    `json:"age"`
	Email   string
	hidden  string
	Ignored string `json:"-"`
}

func TestResolveStructKeyPrecedence(t *testing.T) {
	typ := reflect.TypeOf(descTarget{})

	nameField, _ := typ.FieldByName("Name")
	assert.Equal(t, "full_name", ResolveStructKey(nameField))

	ageField, _ := typ.FieldByName("Age")
	assert.Equal(t, "age", ResolveStructKey(ageField))

	emailField, _ := typ.FieldByName("Email")
	assert.Equal(t, "Email", ResolveStructKey(emailField))

	ignoredField, _ := typ.FieldByName("Ignored")
	assert.Equal(t, "-", ResolveStructKey(ignoredField))
}

func TestDescriptorForSkipsUnexportedAndDashFields(t *testing.T) {
	desc := descriptorFor(reflect.TypeOf(descTarget{}))

	_, ok := desc.field("full_name")
	assert.True(t, ok)

	_, ok = desc.field("hidden")
	assert.False(t, ok)

	_, ok = desc.field("-")
	assert.False(t, ok)
	_, ok = desc.field("Ignored")
	assert.False(t, ok)
}

func TestDescriptorForIsCachedPerType(t *testing.T) {
	a := descriptorFor(reflect.TypeOf(descTarget{}))
	b := descriptorFor(reflect.TypeOf(descTarget{}))
	assert.Same(t, a, b)
}

func TestDescriptorSetAssignsConvertibleValue(t *testing.T) {
	desc := descriptorFor(reflect.TypeOf(descTarget{}))
	var target descTarget
	rv := reflect.ValueOf(&target).Elem()

	require.True(t, desc.set(rv, "age", int64(42)))
	assert.Equal(t, 42, target.Age)
}

func TestDescriptorSetRejectsUnknownField(t *testing.T) {
	desc := descriptorFor(reflect.TypeOf(descTarget{}))
	var target descTarget
	rv := reflect.ValueOf(&target).Elem()

	assert.False(t, desc.set(rv, "nonexistent", "x"))
}
