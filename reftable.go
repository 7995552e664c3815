package objectwire

import "fmt"

// referenceTable maps a document-scoped "@id" to the Node that defined it.
// Lookups chase chains of pure "@ref" aliases until a non-alias node is
// reached or the chain terminates in absence (an error at patch time).
type referenceTable struct {
	byID map[int64]*Node
}

func newReferenceTable() *referenceTable {
	return &referenceTable{byID: make(map[int64]*Node)}
}

// put registers a defining node under its id. A duplicate id is a
// CorruptNode error: ids are write-once per document.
func (t *referenceTable) put(id int64, n *Node) error {
	if existing, ok := t.byID[id]; ok && existing != n {
		return Issues{{
			Path:    "/",
			Code:    CodeCorruptNode,
			Message: fmt.Sprintf("duplicate @id %d", id),
		}}
	}
	t.byID[id] = n
	return nil
}

// resolve chases a chain of pure "@ref" aliases starting at id and returns
// the first non-alias (defining) node. It returns ok=false if the chain
// terminates in an id absent from the table.
func (t *referenceTable) resolve(id int64) (*Node, bool) {
	seen := map[int64]struct{}{}
	for {
		n, ok := t.byID[id]
		if !ok {
			return nil, false
		}
		if n.RefID == nil {
			return n, true
		}
		if _, looped := seen[id]; looped {
			// A ref chain that cycles back on itself without ever
			// reaching a defining node: treat as unknown, not an
			// infinite loop.
			return nil, false
		}
		seen[id] = struct{}{}
		id = *n.RefID
	}
}

// getOrThrow mirrors the Java ReferenceTracker.getOrThrow contract used by
// the patch pass: absence is always an UnknownReference fault. Every
// "@ref" lookup in the resolver - at traversal time and again for each
// deferred patch/rehash entry during cleanup - goes through this one
// helper, so CodeUnknownReference always carries the same message shape.
func (t *referenceTable) getOrThrow(id int64) (*Node, error) {
	n, ok := t.resolve(id)
	if !ok {
		return nil, Issues{unknownReferenceIssue(id)}
	}
	return n, nil
}

// unknownReferenceIssue builds the Issue reported whenever an "@ref"
// cannot be resolved to a defining node, whether that happens during
// traversal (getOrThrow's own not-found case) or during cleanup, where a
// found-but-never-instantiated target is the same fault under a
// different name.
func unknownReferenceIssue(id int64) Issue {
	return Issue{Path: "/", Code: CodeUnknownReference, Message: fmt.Sprintf("unresolved @ref %d", id)}
}

// clear drops all entries; called once by Resolver.cleanup.
func (t *referenceTable) clear() { t.byID = nil }
