// Package middleware holds framework-agnostic helpers shared by the
// echo and gin front-ends (middleware/echo, middleware/gin): a context
// key for stashing the resolved value, a default Options, and the JSON
// error payload shape both front-ends emit on failure.
package middleware

import (
	"context"
	"reflect"

	objectwire "github.com/objectwire/objectwire"
)

// ctxKeyResolved is a typed context key for storing a resolved value.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyResolved[T any] struct{}

// ContextWithResolved attaches a resolved value of type T to the context.
func ContextWithResolved[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyResolved[T]{}, v)
}

// ResolvedFromContext retrieves a value stored by ContextWithResolved.
func ResolvedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyResolved[T]{}).(T)
	return v, ok
}

// DefaultOptions returns the Options used by the HTTP front-ends when the
// caller doesn't supply its own: duplicate object keys are rejected and
// nesting is capped, guarding against pathological request bodies.
func DefaultOptions() *objectwire.Options {
	return objectwire.NewOptions().
		WithStrictness(objectwire.Strictness{OnDuplicateKey: objectwire.SeverityError}).
		WithMaxDepth(64)
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues objectwire.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

// HintTypeOf returns the reflect.Type a zero T carries, for callers
// driving Resolve directly instead of through ResolveAs.
func HintTypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
