// Package objectwire reconstructs a typed, possibly cyclic, object graph
// from a tree of tagged Nodes carrying "@id", "@ref", "@type", "@keys" and
// "@items" markers.
//
// A Node tree is produced by a wire decoder (internal/wire, plus the
// source/* packages for concrete formats) and handed to Resolve, which
// drives a single-threaded work-stack traversal: each Node is turned into a
// typed instance via the FactoryRegistry/ScalarConverter instantiation
// ladder, forward references into a slice, struct field or map value are
// recorded as UnresolvedReference entries and patched in place, while a
// forward-referenced map key - or an element of a Set declared as
// map[T]struct{} - is recorded as a MapRehashEntry and only inserted once
// every identity in the document has stabilized. A final pass reports fields
// the target type could not accept.
//
// Design policy:
//   - Keep the public surface in the root package; format-specific code
//     lives under source/, HTTP front-ends under middleware/, the CLI
//     under cmd/objectwire.
//   - The tokenizer/parser, reflective field setter, and scalar conversion
//     table are treated as pluggable collaborators (TokenSource,
//     typeDescriptor, ScalarConverter) rather than baked-in stdlib calls.
//
// Typical usage:
//
//	opts := objectwire.NewOptions().WithFactory(reflect.TypeOf(User{}), userFactory)
//	v, err := objectwire.ResolveAs[*User](ctx, objectwire.JSONBytes(data), opts)
package objectwire
