package objectwire

import (
	"reflect"
	"strings"
	"sync"
)

// ResolveStructKey applies the repository-wide rule for a struct field's
// external key. Priority: `objectwire:"name=..."` > json tag name > field
// name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if ot := sf.Tag.Get("objectwire"); ot != "" {
		for _, p := range strings.Split(ot, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// typeDescriptor caches the field-name -> reflect.StructField mapping for a
// struct type, standing in for the "reflective field-access utility" the
// spec treats as an external collaborator. Built once per reflect.Type and
// reused by both record strategies and the forward-reference patch pass.
type typeDescriptor struct {
	typ      reflect.Type
	byKey    map[string]reflect.StructField
	keyOrder []string
}

var descriptorCache sync.Map // reflect.Type -> *typeDescriptor

func descriptorFor(t reflect.Type) *typeDescriptor {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := descriptorCache.Load(t); ok {
		return cached.(*typeDescriptor)
	}
	d := &typeDescriptor{typ: t, byKey: make(map[string]reflect.StructField)}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			key := ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			d.byKey[key] = sf
			d.keyOrder = append(d.keyOrder, key)
		}
	}
	actual, _ := descriptorCache.LoadOrStore(t, d)
	return actual.(*typeDescriptor)
}

// field looks up a struct field by its wire key.
func (d *typeDescriptor) field(key string) (reflect.StructField, bool) {
	sf, ok := d.byKey[key]
	return sf, ok
}

// set assigns value to the named field on target (an addressable struct
// value, not a pointer). Returns false if the field is unknown or not
// assignable (callers treat that as a FieldAccessFailure or a missing
// field, depending on context).
func (d *typeDescriptor) set(target reflect.Value, key string, value any) bool {
	sf, ok := d.byKey[key]
	if !ok {
		return false
	}
	fv := target.FieldByIndex(sf.Index)
	if !fv.CanSet() {
		return false
	}
	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return true
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return true
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
		return true
	}
	return false
}
