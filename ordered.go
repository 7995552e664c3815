package objectwire

import "reflect"

// OrderedSet is the insertion-order equivalent substituted for an
// unregistered "sorted set" declared type: when the map strategy is
// generic and the node names a type the TypeRegistry has never seen,
// OrderedSet keeps the items in wire order rather than discarding the
// declaration entirely. It is a plain slice, so it flows through
// traverseArray's ordinary index-patch path unchanged.
type OrderedSet []any

// OrderedMapEntry is one key/value pair of an OrderedMap, in wire order.
type OrderedMapEntry struct {
	Key   any
	Value any
}

// OrderedMap is the insertion-order equivalent substituted for an
// unregistered "sorted map" declared type. A plain Go map cannot promise
// an iteration order, so the fallback represents the entries as an
// ordered slice instead of reaching for map[string]any.
type OrderedMap []OrderedMapEntry

var orderedMapEntryType = reflect.TypeOf(OrderedMapEntry{})

// isOrderedMapType reports whether t is (or is defined as) a slice of
// OrderedMapEntry, the shape traverseMap builds an OrderedMap from
// instead of a native Go map.
func isOrderedMapType(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Slice && t.Elem() == orderedMapEntryType
}

func defaultOrderedCollectionFallbacks() map[string]reflect.Type {
	orderedSet := reflect.TypeOf(OrderedSet{})
	orderedMap := reflect.TypeOf(OrderedMap{})
	return map[string]reflect.Type{
		"SortedSet": orderedSet,
		"TreeSet":   orderedSet,
		"SortedMap": orderedMap,
		"TreeMap":   orderedMap,
	}
}
