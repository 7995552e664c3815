package objectwire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	wire "github.com/objectwire/objectwire/internal/wire"
)

// Resolve reads exactly one document from src, builds its Node tree, and
// drives a Resolver over it, returning the finished root value. hint
// seeds the root node's caller-context type, consulted when the
// document's own "@type" (if any) cannot be resolved via the Options'
// TypeRegistry.
func Resolve(ctx context.Context, src Source, hint reflect.Type, opts *Options) (any, error) {
	if opts == nil {
		opts = NewOptions()
	}
	enforced := wire.WrapWithEnforcement(src, wire.EnforceOptions{
		OnDuplicate:   toWireDup(opts.Strictness.OnDuplicateKey),
		OnDuplicateID: toWireDup(opts.Strictness.OnDuplicateID),
		MaxDepth:      opts.MaxDepth,
		MaxBytes:      opts.MaxBytes,
		FailFast:      opts.FailFast,
	})
	if opts.CloseStream {
		if c, ok := src.(io.Closer); ok {
			defer c.Close()
		}
	}
	wv, err := wire.DecodeValue(enforced)
	if err != nil {
		return nil, toIssues(err)
	}
	root, refs, err := BuildTree(wv, opts.typeReg(), hint)
	if err != nil {
		return nil, toIssues(err)
	}
	r := newResolver(opts, refs)
	return r.ResolveRoot(ctx, root)
}

// ResolveAs is Resolve's generically typed counterpart: T seeds the root
// hint type and the result is asserted back to T, reported as a
// RootTypeMismatch Issue if the resolved value does not fit.
func ResolveAs[T any](ctx context.Context, src Source, opts *Options) (T, error) {
	var zero T
	hint := reflect.TypeOf(zero)
	v, err := Resolve(ctx, src, hint, opts)
	if v == nil {
		return zero, err
	}
	if tv, ok := v.(T); ok {
		return tv, err
	}
	return zero, AppendIssues(toIssues(err), Issue{
		Code:    CodeRootTypeMismatch,
		Message: fmt.Sprintf("root value has type %T, want %s", v, hint),
	})
}

// ResolveJSONBytes is a convenience wrapper around Resolve for an
// in-memory JSON document.
func ResolveJSONBytes(ctx context.Context, data []byte, hint reflect.Type, opts *Options) (any, error) {
	return Resolve(ctx, JSONBytes(data), hint, opts)
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie wire.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}
