package objectwire

import (
	"context"
	"fmt"
	"reflect"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// Resolver drives a single Resolve call: the work-stack traversal that
// instantiates and populates every Node in a document, followed by the
// fixed cleanup sequence (patch unresolved references, rehash maps whose
// key depended on one, report missing fields, then clear). One Resolver
// is created per call and is not reused or shared across goroutines
// (one call, one goroutine).
type Resolver struct {
	opts  *Options
	refs  *referenceTable
	types *typeResolver

	unresolved []unresolvedReference
	rehash     []mapRehashEntry
	postRehash []func() error
	missing    []missingField
	issues     Issues
}

func newResolver(opts *Options, refs *referenceTable) *Resolver {
	return &Resolver{opts: opts, refs: refs, types: newTypeResolver(opts)}
}

// ResolveRoot runs the traversal and cleanup phases for root and returns
// its finished target. Collected (non-fatal) Issues are returned as an
// error alongside the best-effort target, matching Issues' own
// implementation of the error interface.
func (r *Resolver) ResolveRoot(ctx context.Context, root *Node) (any, error) {
	value, deferred, err := r.resolveChild(ctx, root, root.HintType)
	if err != nil {
		return nil, err
	}
	if deferred {
		// root is itself a pure "@ref" whose target hadn't been visited
		// yet; patch it in once cleanup resolves the reference, the same
		// path any other forward-referencing slot takes.
		r.deferPatch(root, *root.RefID, root.HintType, func(resolved any) error {
			root.Target = resolved
			return nil
		})
	} else {
		root.Target = value
	}
	r.cleanup(ctx)
	r.finalizeNode(ctx, root)
	if len(r.issues) > 0 {
		return root.Target, r.issues
	}
	return root.Target, nil
}

// finalizeNode runs the Normalize/Refine post-processing hooks for a node
// whose target is in its final, fully-patched shape. Called once a node's
// pending count reaches zero, whether that happens during the initial
// traversal or later during cleanup's patch/rehash passes.
func (r *Resolver) finalizeNode(ctx context.Context, n *Node) {
	if n.finalized {
		return
	}
	n.finalized = true
	if err := applyRefine(ctx, n.Target); err != nil {
		r.appendIssue(issueFromError(err))
		return
	}
	normalized, err := applyNormalize(ctx, n.Target)
	if err != nil {
		r.appendIssue(issueFromError(err))
		return
	}
	n.Target = normalized
}

// traverseSpecificType dispatches a single Node according to its shape,
// after giving any registered Factory first refusal, which takes
// precedence over enum detection, the converter probe, and default
// allocation, uniformly across shapes.
func (r *Resolver) traverseSpecificType(ctx context.Context, n *Node) error {
	if handled, err := r.tryFactory(ctx, n); err != nil {
		return err
	} else if handled {
		return nil
	}
	switch {
	case n.IsScalar():
		return r.traverseScalar(ctx, n)
	case n.IsArrayShape():
		return r.traverseArray(ctx, n)
	case n.IsMap():
		return r.traverseMap(ctx, n)
	case n.IsRecord():
		return r.traverseRecord(ctx, n)
	default:
		return Issues{{Code: CodeCorruptNode, Message: "node has no recognizable shape"}}
	}
}

// GatherRemainingValues exposes FactoryRegistry.GatherRemainingValues to
// a Factory implementation living outside this package, which otherwise
// has no way to reach the registry carried on Options.
func (r *Resolver) GatherRemainingValues(ctx context.Context, n *Node, exclude map[string]struct{}) ([]any, error) {
	return r.opts.factoryRegistry().GatherRemainingValues(ctx, n, r, exclude)
}

func (r *Resolver) tryFactory(ctx context.Context, n *Node) (bool, error) {
	t := r.types.resolve(n)
	if t == nil {
		return false, nil
	}
	f, ok := r.opts.factoryRegistry().Lookup(t)
	if !ok {
		return false, nil
	}
	target, err := f.New(ctx, n, r)
	if err != nil {
		return true, Issues{{Code: CodeInstantiationFailure, Message: err.Error()}}
	}
	n.Target = target
	n.Finished = f.ObjectFinal()
	if !n.Finished && n.IsRecord() {
		strat := r.recordStrategyFor(n)
		if err := strat.populate(ctx, r, n, target); err != nil {
			return true, err
		}
		if n.pending == 0 {
			n.Finished = true
			r.finalizeNode(ctx, n)
		}
	}
	return true, nil
}

func (r *Resolver) traverseScalar(ctx context.Context, n *Node) error {
	t := r.types.resolve(n)
	v, err := r.opts.scalarConverter().Convert(n.Value, t)
	if err != nil {
		if isEnumKind(t) {
			return Issues{{Code: CodeInstantiationFailure, Message: err.Error()}}
		}
		// Fast-path probe failure: recorded, not fatal, falls through to
		// the raw decoded value (mirrors the Java Converter's
		// catch-and-ignore, replacing silent discard with a diagnostic).
		r.opts.diagnose(ctx, Issue{Code: CodeParseError, Message: "scalar conversion probe failed: " + err.Error()})
		n.setFinishedTarget(n.Value, true)
		return nil
	}
	n.setFinishedTarget(v, true)
	return nil
}

func (r *Resolver) traverseRecord(ctx context.Context, n *Node) error {
	strat := r.recordStrategyFor(n)
	target, err := strat.instantiate(ctx, r, n, r.types.resolve(n))
	if err != nil {
		return err
	}
	n.Target = target
	if err := strat.populate(ctx, r, n, target); err != nil {
		return err
	}
	if n.pending == 0 {
		n.Finished = true
		r.finalizeNode(ctx, n)
	}
	return nil
}

func (r *Resolver) traverseArray(ctx context.Context, n *Node) error {
	t := r.types.resolve(n)
	if t != nil && t.Kind() == reflect.Map {
		return r.traverseArrayAsSet(ctx, n, t)
	}
	elemType := anyType
	sliceType := reflect.SliceOf(elemType)
	if t != nil {
		if t.Kind() != reflect.Slice {
			return Issues{{Code: CodeArrayElementMismatch, Message: "declared type " + t.String() + " is not a slice for an array-shaped node"}}
		}
		sliceType, elemType = t, t.Elem()
	}
	sv := reflect.MakeSlice(sliceType, len(n.Items), len(n.Items))
	n.Target = sv.Interface()

	for i, item := range n.Items {
		value, deferred, err := r.resolveChild(ctx, item, elemType)
		if err != nil {
			return err
		}
		if deferred {
			idx := i
			r.deferPatch(n, *item.RefID, elemType, func(resolved any) error {
				return setSliceIndex(sv, idx, resolved)
			})
			continue
		}
		if err := setSliceIndex(sv, i, value); err != nil {
			return Issues{{Code: CodeArrayElementMismatch, Message: err.Error()}}
		}
	}
	if n.pending == 0 {
		n.Finished = true
		r.finalizeNode(ctx, n)
	}
	return nil
}

// traverseArrayAsSet handles an array-shaped node (bare "@items", no
// "@keys") declared against a map-kind Go type: the idiomatic Go Set,
// map[T]struct{} or similar. A Set is a non-indexable collection, so a
// forward-referencing element cannot take the slice's patch-by-index
// route; it takes the "collection-append" route instead. Because the
// container is hash-based, a deferred element is inserted through the same
// rehash mechanism traverseMap uses for a key that depended on a forward
// reference, so its insertion only happens once identities are stable,
// with the element as key and a zero value as the sentinel. An element
// that is already resolved is inserted immediately.
func (r *Resolver) traverseArrayAsSet(ctx context.Context, n *Node, t reflect.Type) error {
	elemType := t.Key()
	sentinel := reflect.Zero(t.Elem()).Interface()
	mv := reflect.MakeMap(t)
	n.Target = mv.Interface()

	for _, item := range n.Items {
		value, deferred, err := r.resolveChild(ctx, item, elemType)
		if err != nil {
			return err
		}
		if deferred {
			n.pending++
			r.rehash = append(r.rehash, mapRehashEntry{owner: n, mapVal: mv, keyRef: *item.RefID, item: sentinel})
			continue
		}
		if err := setMapEntry(mv, value, sentinel); err != nil {
			return Issues{{Code: CodeArrayElementMismatch, Message: err.Error()}}
		}
	}
	if n.pending == 0 {
		n.Finished = true
		r.finalizeNode(ctx, n)
	}
	return nil
}

func (r *Resolver) traverseMap(ctx context.Context, n *Node) error {
	t := r.types.resolve(n)
	if isOrderedMapType(t) {
		return r.traverseOrderedMap(ctx, n, t)
	}
	keyType, itemType := anyType, anyType
	mapType := reflect.MapOf(keyType, itemType)
	if t != nil {
		if t.Kind() != reflect.Map {
			return Issues{{Code: CodeArrayElementMismatch, Message: "declared type " + t.String() + " is not a map for an @keys/@items node"}}
		}
		mapType, keyType, itemType = t, t.Key(), t.Elem()
	}
	mv := reflect.MakeMap(mapType)
	n.Target = mv.Interface()

	for i, keyNode := range n.Keys {
		itemNode := n.Items[i]
		keyVal, keyDeferred, err := r.resolveChild(ctx, keyNode, keyType)
		if err != nil {
			return err
		}
		itemVal, itemDeferred, err := r.resolveChild(ctx, itemNode, itemType)
		if err != nil {
			return err
		}

		switch {
		case !keyDeferred && !itemDeferred:
			if err := setMapEntry(mv, keyVal, itemVal); err != nil {
				return Issues{{Code: CodeArrayElementMismatch, Message: err.Error()}}
			}
		case keyDeferred && !itemDeferred:
			n.pending++
			r.rehash = append(r.rehash, mapRehashEntry{owner: n, mapVal: mv, keyRef: *keyNode.RefID, item: itemVal, itemHint: itemType})
		case !keyDeferred && itemDeferred:
			// The key is known now; pre-insert a zero value and patch it
			// in place once the value's target resolves. No rehash is
			// needed since the key itself never changes.
			if err := setMapEntry(mv, keyVal, reflect.Zero(itemType).Interface()); err != nil {
				return Issues{{Code: CodeArrayElementMismatch, Message: err.Error()}}
			}
			kv := keyVal
			r.deferPatch(n, *itemNode.RefID, itemType, func(resolved any) error {
				return setMapEntry(mv, kv, resolved)
			})
		default: // both key and value are forward references
			n.pending++
			r.rehash = append(r.rehash, mapRehashEntry{
				owner: n, mapVal: mv, keyRef: *keyNode.RefID,
				hasItemRef: true, itemRef: *itemNode.RefID, itemHint: itemType,
			})
		}
	}
	if n.pending == 0 {
		n.Finished = true
		r.finalizeNode(ctx, n)
	}
	return nil
}

// traverseOrderedMap handles a map-shape node ("@keys"+"@items") declared
// as an OrderedMap: the fallback typeResolver substitutes for an
// unregistered "sorted map" type name. Entries keep wire order as a
// plain slice rather than a Go map, which promises no iteration order at
// all, so both key and value slots patch by index exactly like
// traverseArray's ordinary elements - no rehash pass is needed since
// nothing here is hash-based.
func (r *Resolver) traverseOrderedMap(ctx context.Context, n *Node, t reflect.Type) error {
	sv := reflect.MakeSlice(t, len(n.Keys), len(n.Keys))
	n.Target = sv.Interface()

	for i, keyNode := range n.Keys {
		itemNode := n.Items[i]
		idx := i
		keyVal, keyDeferred, err := r.resolveChild(ctx, keyNode, anyType)
		if err != nil {
			return err
		}
		if keyDeferred {
			r.deferPatch(n, *keyNode.RefID, anyType, func(resolved any) error {
				setOrderedEntryField(sv, idx, "Key", resolved)
				return nil
			})
		} else {
			setOrderedEntryField(sv, idx, "Key", keyVal)
		}

		itemVal, itemDeferred, err := r.resolveChild(ctx, itemNode, anyType)
		if err != nil {
			return err
		}
		if itemDeferred {
			r.deferPatch(n, *itemNode.RefID, anyType, func(resolved any) error {
				setOrderedEntryField(sv, idx, "Value", resolved)
				return nil
			})
		} else {
			setOrderedEntryField(sv, idx, "Value", itemVal)
		}
	}
	if n.pending == 0 {
		n.Finished = true
		r.finalizeNode(ctx, n)
	}
	return nil
}

func setOrderedEntryField(sv reflect.Value, i int, field string, value any) {
	f := sv.Index(i).FieldByName(field)
	if value == nil {
		f.Set(reflect.Zero(f.Type()))
		return
	}
	f.Set(reflect.ValueOf(value))
}

// resolveChild resolves a single value slot (a field value, array item, or
// map key/item). It returns deferred=true when the slot is a forward
// "@ref" whose target has not been instantiated yet; the caller is
// responsible for registering a patch via deferPatch in that case.
func (r *Resolver) resolveChild(ctx context.Context, child *Node, hint reflect.Type) (any, bool, error) {
	if child == nil {
		return nil, false, nil
	}
	if child.HintType == nil {
		child.HintType = hint
	}
	if child.IsReference() {
		target, err := r.refs.getOrThrow(*child.RefID)
		if err != nil {
			return nil, false, err
		}
		if target.Target != nil {
			// Definitive if Finished; otherwise a live pointer into a
			// cycle still being populated further up the call chain.
			return target.Target, false, nil
		}
		return nil, true, nil
	}
	if child.visited {
		if child.Target != nil {
			return child.Target, false, nil
		}
		return nil, true, nil
	}
	child.visited = true
	if err := r.traverseSpecificType(ctx, child); err != nil {
		return nil, false, err
	}
	return child.Target, false, nil
}

func (r *Resolver) deferPatch(owner *Node, refID int64, hint reflect.Type, apply func(any) error) {
	owner.pending++
	r.unresolved = append(r.unresolved, unresolvedReference{refID: refID, owner: owner, hint: hint, apply: apply})
}

func (r *Resolver) noteMissing(ctx context.Context, target any, key string, child *Node) {
	if r.opts.MissingFieldHandler == nil {
		return
	}
	v, deferred, err := r.resolveChild(ctx, child, nil)
	if err != nil || deferred {
		return
	}
	r.missing = append(r.missing, missingField{target: target, field: key, value: v})
}

func (r *Resolver) noteMissingValue(target any, key string, value any) {
	if r.opts.MissingFieldHandler == nil {
		return
	}
	r.missing = append(r.missing, missingField{target: target, field: key, value: value})
}

func (r *Resolver) appendIssue(iss Issue) { r.issues = AppendIssues(r.issues, iss) }

// cleanup runs the fixed four-step sequence: patch forward references,
// rehash maps whose key depended on one, report missing fields, then
// clear all bookkeeping. The order is load-bearing: a map's key can
// only be known after patching, and missing fields must reflect the
// document's final, fully-patched shape.
func (r *Resolver) cleanup(ctx context.Context) {
	r.patchUnresolvedReferences(ctx)
	r.rehashMaps(ctx)
	for _, fn := range r.postRehash {
		if err := fn(); err != nil {
			r.appendIssue(issueFromError(err))
		}
	}
	r.handleMissingFields()
	r.clear()
}

func (r *Resolver) patchUnresolvedReferences(ctx context.Context) {
	for _, ur := range r.unresolved {
		target, err := r.refs.getOrThrow(ur.refID)
		if err != nil || target.Target == nil {
			r.appendIssue(unknownReferenceIssue(ur.refID))
			ur.owner.pending--
			if r.opts.FailFast {
				return
			}
			continue
		}
		resolved := target.Target
		if ur.hint != nil {
			if conv, err := r.opts.scalarConverter().Convert(resolved, ur.hint); err == nil {
				resolved = conv
			}
		}
		if err := ur.apply(resolved); err != nil {
			r.appendIssue(issueFromError(err))
		}
		ur.owner.pending--
		if ur.owner.pending == 0 {
			ur.owner.Finished = true
			r.finalizeNode(ctx, ur.owner)
		}
		if r.opts.FailFast && len(r.issues) > 0 {
			return
		}
	}
}

func (r *Resolver) rehashMaps(ctx context.Context) {
	for _, e := range r.rehash {
		keyTarget, err := r.refs.getOrThrow(e.keyRef)
		if err != nil || keyTarget.Target == nil {
			r.appendIssue(unknownReferenceIssue(e.keyRef))
			e.owner.pending--
			continue
		}
		item := e.item
		if e.hasItemRef {
			itemTarget, err := r.refs.getOrThrow(e.itemRef)
			if err != nil || itemTarget.Target == nil {
				r.appendIssue(unknownReferenceIssue(e.itemRef))
				e.owner.pending--
				continue
			}
			item = itemTarget.Target
		}
		if err := setMapEntry(e.mapVal, keyTarget.Target, item); err != nil {
			r.appendIssue(issueFromError(err))
		}
		e.owner.pending--
		if e.owner.pending == 0 {
			e.owner.Finished = true
			r.finalizeNode(ctx, e.owner)
		}
	}
}

func (r *Resolver) handleMissingFields() {
	if r.opts.MissingFieldHandler == nil {
		return
	}
	for _, mf := range r.missing {
		r.opts.MissingFieldHandler(mf.target, mf.field, mf.value)
	}
}

func (r *Resolver) clear() {
	r.unresolved = nil
	r.rehash = nil
	r.postRehash = nil
	r.missing = nil
	r.refs.clear()
}

func issueFromError(err error) Issue {
	if ii, ok := AsIssues(err); ok && len(ii) > 0 {
		return ii[0]
	}
	return Issue{Code: CodeFieldAccessFailure, Message: err.Error()}
}

func setSliceIndex(sv reflect.Value, i int, value any) error {
	ev := sv.Index(i)
	if value == nil {
		ev.Set(reflect.Zero(ev.Type()))
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(ev.Type()) {
		ev.Set(rv)
		return nil
	}
	if rv.Type().ConvertibleTo(ev.Type()) {
		ev.Set(rv.Convert(ev.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to element type %s", value, ev.Type())
}

func setMapEntry(mv reflect.Value, key, value any) error {
	kv, err := coerceTo(key, mv.Type().Key())
	if err != nil {
		return err
	}
	vv, err := coerceTo(value, mv.Type().Elem())
	if err != nil {
		return err
	}
	mv.SetMapIndex(kv, vv)
	return nil
}

func coerceTo(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", value, t)
}
