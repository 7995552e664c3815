package objectwire

import (
	"context"
	"reflect"
)

// mapStrategy collects a record node's fields into a generic
// map[string]any, used when Options.ReturningJSONObjects is set or no
// target type could be resolved for the node.
type mapStrategy struct{}

func (mapStrategy) instantiate(ctx context.Context, r *Resolver, n *Node, t reflect.Type) (any, error) {
	return make(map[string]any, len(n.FieldOrder)), nil
}

func (mapStrategy) populate(ctx context.Context, r *Resolver, n *Node, target any) error {
	m, ok := target.(map[string]any)
	if !ok {
		return Issues{{Code: CodeInstantiationFailure, Message: "mapStrategy target is not map[string]any"}}
	}
	desc := mapStrategyDescriptor(r.types.resolve(n))
	for _, key := range n.FieldOrder {
		child := n.Fields[key]
		var hint reflect.Type
		if desc != nil {
			if sf, known := desc.field(key); known {
				hint = sf.Type
			}
		}
		value, deferred, err := r.resolveChild(ctx, child, hint)
		if err != nil {
			return err
		}
		if deferred {
			fieldKey := key
			r.deferPatch(n, *child.RefID, hint, func(resolved any) error {
				m[fieldKey] = resolved
				return nil
			})
			continue
		}
		m[key] = value
	}
	return nil
}

// mapStrategyDescriptor finds the struct descriptor behind a record node's
// declared "@type", if any. A node kept as a generic map still coerces
// scalar leaves against that type's field kinds - only the representation
// stays untyped, not the per-field conversion.
func mapStrategyDescriptor(t reflect.Type) *typeDescriptor {
	if t == nil {
		return nil
	}
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return nil
	}
	return descriptorFor(t)
}
