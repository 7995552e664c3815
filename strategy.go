package objectwire

import (
	"context"
	"reflect"
)

// recordStrategy governs how a record-shaped Node (one carrying a Fields
// map, as opposed to an array or @keys/@items map) is turned into a
// target value. objectStrategy binds named fields onto a typed struct;
// mapStrategy collects them into a generic map[string]any. The active
// strategy is selected by Options.ReturningJSONObjects, mirroring
// json-io's ObjectResolver/MapResolver split
// (returningJsonObjects/returningJavaObjects).
type recordStrategy interface {
	instantiate(ctx context.Context, r *Resolver, n *Node, t reflect.Type) (any, error)
	populate(ctx context.Context, r *Resolver, n *Node, target any) error
}

func (r *Resolver) recordStrategyFor(n *Node) recordStrategy {
	if r.opts.ReturningJSONObjects {
		return mapStrategy{}
	}
	t := r.types.resolve(n)
	if t == nil {
		return mapStrategy{}
	}
	return objectStrategy{}
}
