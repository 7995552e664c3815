package objectwire

import (
	"context"
	"reflect"
)

// objectStrategy binds a record node's fields onto a typed struct via the
// descriptor cache.
type objectStrategy struct{}

func (objectStrategy) instantiate(ctx context.Context, r *Resolver, n *Node, t reflect.Type) (any, error) {
	if t == nil {
		return nil, Issues{{Code: CodeInstantiationFailure, Message: "no target type for record node"}}
	}
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return nil, Issues{{Code: CodeInstantiationFailure, Message: "target " + t.String() + " is not a struct"}}
	}
	return reflect.New(t).Interface(), nil
}

func (objectStrategy) populate(ctx context.Context, r *Resolver, n *Node, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Issues{{Code: CodeInstantiationFailure, Message: "populate requires a non-nil pointer"}}
	}
	elem := rv.Elem()
	desc := descriptorFor(elem.Type())

	for _, key := range n.FieldOrder {
		child := n.Fields[key]
		sf, known := desc.field(key)
		if !known {
			r.noteMissing(ctx, target, key, child)
			continue
		}
		hint := sf.Type
		value, deferred, err := r.resolveChild(ctx, child, hint)
		if err != nil {
			return err
		}
		if deferred {
			fieldKey, elemCopy := key, elem
			r.deferPatch(n, *child.RefID, hint, func(resolved any) error {
				if !desc.set(elemCopy, fieldKey, resolved) {
					return Issues{{Code: CodeFieldAccessFailure, Message: "cannot patch field " + fieldKey}}
				}
				return nil
			})
			continue
		}
		if !desc.set(elem, key, value) {
			r.noteMissingValue(target, key, value)
		}
	}
	return nil
}
