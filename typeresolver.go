package objectwire

import (
	"reflect"
	"sync"
)

// TypeRegistry resolves a wire "@type" string to a Go reflect.Type. Go has
// no runtime "Class.forName" analog, so a document's declared types must
// be registered up front before a Resolve call can bind them.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]reflect.Type)}
}

// Register associates name with the (dereferenced) type of sample.
func (r *TypeRegistry) Register(name string, sample any) *TypeRegistry {
	return r.RegisterType(name, reflect.TypeOf(sample))
}

// RegisterType is Register's reflect.Type-based counterpart.
func (r *TypeRegistry) RegisterType(name string, t reflect.Type) *TypeRegistry {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.mu.Lock()
	r.byName[name] = t
	r.mu.Unlock()
	return r
}

// Resolve looks up a previously registered type by its wire name.
func (r *TypeRegistry) Resolve(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// typeResolver applies declared-vs-hint precedence and the coercion table
// to pick the effective type a Node instantiates as.
type typeResolver struct {
	opts *Options
}

func newTypeResolver(opts *Options) *typeResolver { return &typeResolver{opts: opts} }

// resolve picks the effective type for n: its declared type wins over the
// caller-context hint; a registered coercion then remaps the result; with
// neither present (a hint of `any` counts as absent), the node falls to
// UnknownTypeClass or, when that is nil, the generic map/slice strategy -
// except when it names a "sorted" container type no TypeRegistry entry
// ever claimed (e.g. a document declaring "SortedMap" against a registry
// that never registered one), in which case OrderedCollectionFallbacks
// substitutes the insertion-order equivalent before UnknownTypeClass
// gets a say. If the resolved type is itself an enum and n carries
// items, the node denotes an enum-set rather than a lone constant: the
// effective type becomes a slice of that enum so the array strategy
// allocates and converts items the ordinary way, matching the
// already-declared-as-a-slice case isEnumSetKind recognizes.
func (tr *typeResolver) resolve(n *Node) reflect.Type {
	t := n.EffectiveType()
	if t == anyType {
		// An `any` slot (an untyped slice element, map key or map value)
		// names no type at all and falls back like an undeclared one.
		t = nil
	}
	if t == nil {
		if n.TypeName != "" {
			if fallback, ok := tr.opts.OrderedCollectionFallbacks[n.TypeName]; ok {
				return fallback
			}
		}
		return tr.opts.UnknownTypeClass
	}
	if to, ok := tr.opts.CoercedClasses[t]; ok {
		t = to
	}
	if n.IsArrayShape() && isEnumKind(t) && !isEnumSetKind(t) {
		return reflect.SliceOf(t)
	}
	return t
}

// isEnumKind approximates Java's Enum check: Go carries no such metadata,
// so a declared, named type over a basic kind is treated as enum-like and
// routed through the scalar converter rather than struct population.
func isEnumKind(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return t.Name() != "" && t.PkgPath() != ""
	default:
		return false
	}
}

// isEnumSetKind mirrors the Java EnumSet special case: a slice/array whose
// element type is enum-like.
func isEnumSetKind(t reflect.Type) bool {
	if t == nil || (t.Kind() != reflect.Slice && t.Kind() != reflect.Array) {
		return false
	}
	return isEnumKind(t.Elem())
}
