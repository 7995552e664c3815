package objectwire

import "reflect"

// unresolvedReference records a forward "@ref" seen before its target was
// resolved, so Resolver.patchUnresolvedReferences can complete it once
// every node in the document has been instantiated. apply performs the
// actual assignment - a struct field set, a generic map[string]any field
// set, a slice index set, a map value set under an already-known key, or
// an OrderedMap entry set - capturing it as a closure keeps this type
// agnostic to what kind of holder is being patched. A forward reference
// that a hash-based container needs to hash on (a map key, or an element
// of a Set declared as map[T]struct{}) never goes through apply: it is
// recorded as a mapRehashEntry instead, since the container can't be
// touched until the rehash pass gives it a stable identity to hash on.
type unresolvedReference struct {
	refID int64
	owner *Node        // decremented via owner.pending when patched
	hint  reflect.Type // declared type of the slot being patched, for conversion
	apply func(resolved any) error
}

// missingField records a field a node presented that the target type
// could not accept, delivered to Options.MissingFieldHandler only after
// patching and rehashing have both completed.
type missingField struct {
	target any
	field  string
	value  any
}

// mapRehashEntry records an entry of a hash-based container whose key
// depended on a forward reference at population time, so it could not
// be inserted immediately: either a real map's key, or - when item is
// the map's zero value and hasItemRef is false - one element of a Set
// declared as map[T]struct{}, keyed by the element itself.
// Resolver.rehashMaps inserts it once the key's defining node is known,
// after the ordinary patch pass has run.
type mapRehashEntry struct {
	owner  *Node
	mapVal reflect.Value
	keyRef int64
	item   any
	// itemRef/hasItemRef cover the rare case where the value side was also
	// a forward reference: rehashMaps resolves both references and inserts
	// the entry once, with the value's target as the item.
	itemRef    int64
	hasItemRef bool
	itemHint   reflect.Type
}
