package objectwire

import "reflect"

// Node is a tagged value produced by the wire decoder before types are
// bound. It is the unit the Resolver traverses: a scalar, an array/items
// node, a map (keys+items) node, or a record (field map) node.
//
// Invariants (see SPEC_FULL.md §3):
//   - RefID != nil implies no other content: it is a pure alias.
//   - ID, when non-nil, is unique across the document.
//   - Finished implies Target is the definitive, fully populated instance.
//   - Target != nil but !Finished means at least one field/element still
//     needs patching.
//   - Keys != nil implies this is a map node and len(Keys) == len(Items).
//   - Items != nil with Keys == nil implies an array/collection node.
type Node struct {
	ID       *int64
	RefID    *int64
	TypeName string       // raw "@type" string as seen on the wire, for diagnostics
	Type     reflect.Type // declared type, resolved from TypeName via a TypeRegistry
	HintType reflect.Type // supplied by the caller's context (parent field/component type)

	Fields     map[string]*Node
	FieldOrder []string // Fields' wire order, for deterministic MissingField reporting

	Keys  []*Node
	Items []*Node

	Value any // populated when this node is a scalar

	Target   any
	Finished bool

	visited   bool // traversal bookkeeping; see Resolver.resolveChild
	pending   int  // outstanding deferred patches; Finished flips true at zero
	finalized bool // Normalize/Refine hooks already ran for this node
}

// IsScalar reports whether the node carries a plain scalar value (and is
// not a reference, array, map, or record).
func (n *Node) IsScalar() bool {
	return n != nil && n.RefID == nil && n.Keys == nil && n.Items == nil && n.Fields == nil
}

// IsReference reports whether the node is a pure "@ref" alias.
func (n *Node) IsReference() bool { return n != nil && n.RefID != nil }

// IsMap reports whether the node denotes a map shape ("@keys" present).
func (n *Node) IsMap() bool { return n != nil && n.Keys != nil }

// IsArrayShape reports whether the node denotes an array/collection shape:
// "@items" present with no "@keys".
func (n *Node) IsArrayShape() bool { return n != nil && n.Keys == nil && n.Items != nil }

// IsRecord reports whether the node is a plain field-map (record) node:
// neither a reference, a map, nor an array/collection.
func (n *Node) IsRecord() bool {
	return n != nil && n.RefID == nil && n.Keys == nil && n.Items == nil
}

// setFinishedTarget stores target and marks the node finished in one step.
func (n *Node) setFinishedTarget(target any, finished bool) any {
	n.Target = target
	n.Finished = finished
	return target
}

// EffectiveType returns the node's declared type if resolved, otherwise its
// caller-supplied hint type.
func (n *Node) EffectiveType() reflect.Type {
	if n.Type != nil {
		return n.Type
	}
	return n.HintType
}
