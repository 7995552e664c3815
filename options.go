package objectwire

import (
	"context"
	"reflect"
)

// Severity controls how strongly a recoverable structural issue (a
// duplicate object key, a duplicate "@id") is enforced.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarn
	SeverityError
)

// Strictness groups the duplicate-detection policies applied while
// decoding the wire tree.
type Strictness struct {
	OnDuplicateKey Severity // duplicate object field name
	OnDuplicateID  Severity // duplicate "@id" across the document
}

// MissingFieldHandler is invoked once per (target, field) pair that a node
// presented but the target type could not accept, after patching and
// rehashing have both completed.
type MissingFieldHandler func(target any, field string, value any)

// Options bundles everything that customizes a Resolve call: declared vs.
// caller type coercion, the unknown-type fallback, missing-field
// reporting, the record/map strategy switch, structural limits, and a
// best-effort diagnostics sink.
type Options struct {
	// CoercedClasses remaps a declared type to a different target type
	// before instantiation.
	CoercedClasses map[reflect.Type]reflect.Type

	// UnknownTypeClass is instantiated when a node's "@type" cannot be
	// resolved via the TypeRegistry and no caller hint type (other than
	// `any`) is available. Nil means fall back to a generic map/slice
	// representation.
	UnknownTypeClass reflect.Type

	// OrderedCollectionFallbacks substitutes an insertion-order equivalent
	// when the generic map strategy is in effect and a node declares an
	// unregistered "sorted" container type by name (e.g. "SortedMap",
	// "TreeSet") - the one case UnknownTypeClass's single fallback can't
	// express, since it has no way to know the name ever meant "sorted".
	// Keyed by the raw "@type" string. Defaulted by NewOptions; set to nil
	// to disable the substitution entirely.
	OrderedCollectionFallbacks map[string]reflect.Type

	// MissingFieldHandler, when set, receives fields the target type
	// rejected. Nil means missing fields are silently dropped.
	MissingFieldHandler MissingFieldHandler

	// ReturningJSONObjects selects mapStrategy (generic maps-of-maps) over
	// objectStrategy (typed struct population) for every record node,
	// mirroring json-io's returningJsonObjects/returningJavaObjects split.
	ReturningJSONObjects bool

	Strictness Strictness

	// MaxDepth caps object/array nesting; 0 means unlimited.
	MaxDepth int
	// MaxBytes caps the input size in bytes; 0 means unlimited.
	MaxBytes int64

	// CloseStream, when true and the Source passed to Resolve is also an
	// io.Closer, closes it once resolution finishes (success or failure).
	CloseStream bool

	// Diagnostics receives best-effort Issues that do not abort resolution
	// (e.g. a failed scalar-conversion probe during instantiation). Nil is
	// a no-op sink.
	Diagnostics func(Issue)

	// FailFast aborts at the first fatal issue instead of collecting.
	FailFast bool

	factories    *FactoryRegistry
	typeRegistry *TypeRegistry
	converter    ScalarConverter
}

// NewOptions returns an Options with an empty FactoryRegistry and the
// default TypeRegistry/ScalarConverter wired in, ready for the fluent
// With* methods.
func NewOptions() *Options {
	return &Options{
		CoercedClasses:             make(map[reflect.Type]reflect.Type),
		OrderedCollectionFallbacks: defaultOrderedCollectionFallbacks(),
		factories:                  NewFactoryRegistry(),
		typeRegistry:               NewTypeRegistry(),
		converter:                  defaultConverter{},
	}
}

// WithFactory registers a Factory for t (see FactoryRegistry.Register).
func (o *Options) WithFactory(t reflect.Type, f Factory) *Options {
	o.factories.Register(t, f)
	return o
}

// WithCoercedClass remaps declared type `from` to `to` before
// instantiation.
func (o *Options) WithCoercedClass(from, to reflect.Type) *Options {
	if o.CoercedClasses == nil {
		o.CoercedClasses = make(map[reflect.Type]reflect.Type)
	}
	o.CoercedClasses[from] = to
	return o
}

// WithUnknownTypeClass sets the fallback type for unresolvable "@type"
// strings.
func (o *Options) WithUnknownTypeClass(t reflect.Type) *Options {
	o.UnknownTypeClass = t
	return o
}

// WithOrderedCollectionFallback registers the insertion-order equivalent
// substituted when a node declares the unregistered "sorted" type name.
func (o *Options) WithOrderedCollectionFallback(name string, t reflect.Type) *Options {
	if o.OrderedCollectionFallbacks == nil {
		o.OrderedCollectionFallbacks = make(map[string]reflect.Type)
	}
	o.OrderedCollectionFallbacks[name] = t
	return o
}

// WithMissingFieldHandler installs h as the missing-field sink.
func (o *Options) WithMissingFieldHandler(h MissingFieldHandler) *Options {
	o.MissingFieldHandler = h
	return o
}

// WithReturningJSONObjects toggles the map/object strategy switch.
func (o *Options) WithReturningJSONObjects(v bool) *Options {
	o.ReturningJSONObjects = v
	return o
}

// WithStrictness sets the duplicate-key/duplicate-id policy.
func (o *Options) WithStrictness(s Strictness) *Options {
	o.Strictness = s
	return o
}

// WithMaxDepth caps nesting depth.
func (o *Options) WithMaxDepth(n int) *Options {
	o.MaxDepth = n
	return o
}

// WithMaxBytes caps input size.
func (o *Options) WithMaxBytes(n int64) *Options {
	o.MaxBytes = n
	return o
}

// WithDiagnostics installs a best-effort issue collector.
func (o *Options) WithDiagnostics(sink func(Issue)) *Options {
	o.Diagnostics = sink
	return o
}

// WithTypeRegistry replaces the default TypeRegistry.
func (o *Options) WithTypeRegistry(r *TypeRegistry) *Options {
	if r != nil {
		o.typeRegistry = r
	}
	return o
}

// WithConverter replaces the default ScalarConverter.
func (o *Options) WithConverter(c ScalarConverter) *Options {
	if c != nil {
		o.converter = c
	}
	return o
}

// WithCloseStream toggles closing the Source after resolution.
func (o *Options) WithCloseStream(v bool) *Options {
	o.CloseStream = v
	return o
}

func (o *Options) diagnose(ctx context.Context, iss Issue) {
	_ = ctx
	if o.Diagnostics != nil {
		o.Diagnostics(iss)
	}
}

func (o *Options) factoryRegistry() *FactoryRegistry {
	if o.factories == nil {
		o.factories = NewFactoryRegistry()
	}
	return o.factories
}

func (o *Options) typeReg() *TypeRegistry {
	if o.typeRegistry == nil {
		o.typeRegistry = NewTypeRegistry()
	}
	return o.typeRegistry
}

func (o *Options) scalarConverter() ScalarConverter {
	if o.converter == nil {
		o.converter = defaultConverter{}
	}
	return o.converter
}
