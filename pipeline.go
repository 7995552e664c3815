package objectwire

import "context"

// Normalizer is implemented by a resolved target type that wants to adjust
// its own value once the resolver has finished populating it (e.g.
// canonicalizing a string, defaulting a zero-value field). It runs once
// the node has no outstanding patches: during traversal for a node with no
// forward references, otherwise during the patch or rehash pass that
// completes it, and always after Refine.
type Normalizer interface {
	Normalize(ctx context.Context) (any, error)
}

// Refiner is implemented by a resolved target type that wants to validate
// itself once fully populated. Unlike Normalizer it cannot change the
// value, only reject it.
type Refiner interface {
	Refine(ctx context.Context) error
}

// applyNormalize calls Normalize if target implements Normalizer, returning
// the (possibly replaced) value.
func applyNormalize(ctx context.Context, target any) (any, error) {
	if n, ok := target.(Normalizer); ok {
		return n.Normalize(ctx)
	}
	return target, nil
}

// applyRefine calls Refine if target implements Refiner.
func applyRefine(ctx context.Context, target any) error {
	if r, ok := target.(Refiner); ok {
		return r.Refine(ctx)
	}
	return nil
}
