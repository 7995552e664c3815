package objectwire

import (
	"fmt"
	"reflect"

	wire "github.com/objectwire/objectwire/internal/wire"
)

// BuildTree converts a decoded WireValue into a Node tree, resolving each
// "@type" string against reg and registering every "@id" into a fresh
// referenceTable as it goes — mirroring the Java parser, which builds its
// id-to-object map during parsing itself rather than as a later pass.
// hint seeds the root node's caller-context type.
func BuildTree(v wire.WireValue, reg *TypeRegistry, hint reflect.Type) (*Node, *referenceTable, error) {
	refs := newReferenceTable()
	root, err := buildNode(v, reg, refs, hint)
	if err != nil {
		return nil, nil, err
	}
	return root, refs, nil
}

func buildNode(v wire.WireValue, reg *TypeRegistry, refs *referenceTable, hint reflect.Type) (*Node, error) {
	switch v.Kind {
	case wire.ValueScalar:
		return &Node{Value: v.Scalar, HintType: hint}, nil
	case wire.ValueArray:
		items := make([]*Node, len(v.Array))
		for i, e := range v.Array {
			child, err := buildNode(e, reg, refs, nil)
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return &Node{Items: items, HintType: hint}, nil
	case wire.ValueObject:
		return buildObject(v.Object, reg, refs, hint)
	default:
		return nil, fmt.Errorf("objectwire: unrecognized wire value kind %d", v.Kind)
	}
}

func buildObject(o *wire.WireObject, reg *TypeRegistry, refs *referenceTable, hint reflect.Type) (*Node, error) {
	n := &Node{ID: o.ID, RefID: o.RefID, TypeName: o.Type, HintType: hint}
	if o.Type != "" && reg != nil {
		if t, ok := reg.Resolve(o.Type); ok {
			n.Type = t
		}
	}

	if n.RefID != nil {
		// A pure alias carries no further content.
		if n.ID != nil {
			if err := refs.put(*n.ID, n); err != nil {
				return nil, err
			}
		}
		return n, nil
	}

	switch {
	case o.HasKeys:
		keys := make([]*Node, len(o.Keys))
		items := make([]*Node, len(o.Items))
		for i, k := range o.Keys {
			kn, err := buildNode(k, reg, refs, nil)
			if err != nil {
				return nil, err
			}
			keys[i] = kn
		}
		for i, it := range o.Items {
			itn, err := buildNode(it, reg, refs, nil)
			if err != nil {
				return nil, err
			}
			items[i] = itn
		}
		n.Keys, n.Items = keys, items
	case o.HasItems:
		items := make([]*Node, len(o.Items))
		for i, it := range o.Items {
			itn, err := buildNode(it, reg, refs, nil)
			if err != nil {
				return nil, err
			}
			items[i] = itn
		}
		n.Items = items
	default:
		if len(o.Order) > 0 {
			n.Fields = make(map[string]*Node, len(o.Order))
			n.FieldOrder = o.Order
			for _, key := range o.Order {
				fn, err := buildNode(o.Fields[key], reg, refs, nil)
				if err != nil {
					return nil, err
				}
				n.Fields[key] = fn
			}
		} else {
			n.Fields = map[string]*Node{}
		}
	}

	if n.ID != nil {
		if err := refs.put(*n.ID, n); err != nil {
			return nil, err
		}
	}
	return n, nil
}
