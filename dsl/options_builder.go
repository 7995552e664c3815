// Package dsl is the fluent builder surface for objectwire.Options: a
// chained Object()-style builder for a configuration struct instead of a
// validation schema. There is no Schema to bind here, just an Options
// value to assemble and hand to Resolve.
package dsl

import (
	"reflect"

	objectwire "github.com/objectwire/objectwire"
)

// OptionsBuilder accumulates Options settings through chained With* calls,
// terminated by Build.
type OptionsBuilder struct {
	opts *objectwire.Options
}

// NewOptions starts a builder over a fresh Options value.
func NewOptions() *OptionsBuilder {
	return &OptionsBuilder{opts: objectwire.NewOptions()}
}

// WithFactory registers a Factory for t.
func (b *OptionsBuilder) WithFactory(t reflect.Type, f objectwire.Factory) *OptionsBuilder {
	b.opts.WithFactory(t, f)
	return b
}

// WithCoercedClass remaps declared type from to to.
func (b *OptionsBuilder) WithCoercedClass(from, to reflect.Type) *OptionsBuilder {
	b.opts.WithCoercedClass(from, to)
	return b
}

// WithUnknownTypeClass sets the fallback type for unresolvable "@type" names.
func (b *OptionsBuilder) WithUnknownTypeClass(t reflect.Type) *OptionsBuilder {
	b.opts.WithUnknownTypeClass(t)
	return b
}

// WithMissingFieldHandler installs h as the missing-field sink.
func (b *OptionsBuilder) WithMissingFieldHandler(h objectwire.MissingFieldHandler) *OptionsBuilder {
	b.opts.WithMissingFieldHandler(h)
	return b
}

// WithReturningJSONObjects toggles the map/object strategy switch.
func (b *OptionsBuilder) WithReturningJSONObjects(v bool) *OptionsBuilder {
	b.opts.WithReturningJSONObjects(v)
	return b
}

// WithStrictness sets the duplicate-key/duplicate-id policy.
func (b *OptionsBuilder) WithStrictness(s objectwire.Strictness) *OptionsBuilder {
	b.opts.WithStrictness(s)
	return b
}

// WithMaxDepth caps nesting depth.
func (b *OptionsBuilder) WithMaxDepth(n int) *OptionsBuilder {
	b.opts.WithMaxDepth(n)
	return b
}

// WithMaxBytes caps input size.
func (b *OptionsBuilder) WithMaxBytes(n int64) *OptionsBuilder {
	b.opts.WithMaxBytes(n)
	return b
}

// WithDiagnostics installs a best-effort issue collector.
func (b *OptionsBuilder) WithDiagnostics(sink func(objectwire.Issue)) *OptionsBuilder {
	b.opts.WithDiagnostics(sink)
	return b
}

// WithTypeRegistry replaces the default TypeRegistry.
func (b *OptionsBuilder) WithTypeRegistry(r *objectwire.TypeRegistry) *OptionsBuilder {
	b.opts.WithTypeRegistry(r)
	return b
}

// WithConverter replaces the default ScalarConverter.
func (b *OptionsBuilder) WithConverter(c objectwire.ScalarConverter) *OptionsBuilder {
	b.opts.WithConverter(c)
	return b
}

// WithCloseStream toggles closing the Source after resolution.
func (b *OptionsBuilder) WithCloseStream(v bool) *OptionsBuilder {
	b.opts.WithCloseStream(v)
	return b
}

// Build returns the assembled Options.
func (b *OptionsBuilder) Build() *objectwire.Options {
	return b.opts
}
