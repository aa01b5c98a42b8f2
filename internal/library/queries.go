package library

import "fmt"

func (idx *Index) checkRef(ref NodeRef) error {
	var n int
	switch ref.Tree {
	case PathTree:
		n = len(idx.PathNodes)
	case TagTree:
		n = len(idx.TagNodes)
	default:
		return fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
	}
	if int(ref.ID) >= n {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
	}
	return nil
}

// Node returns the summary of the node ref points to.
func (idx *Index) Node(ref NodeRef) (NodeSummary, error) {
	if err := idx.checkRef(ref); err != nil {
		return NodeSummary{}, err
	}
	return idx.summary(ref), nil
}

func (idx *Index) summary(ref NodeRef) NodeSummary {
	if ref.Tree == PathTree {
		n := &idx.PathNodes[ref.ID]
		return NodeSummary{
			Ref:   ref,
			Name:  n.Name,
			Kind:  n.Kind,
			Path:  n.Path,
			Count: n.Count,
			Exts:  n.Exts,
		}
	}
	n := &idx.TagNodes[ref.ID]
	return NodeSummary{
		Ref:   ref,
		Name:  n.Name,
		Kind:  n.Kind,
		Count: n.Count,
		Exts:  n.Exts,
	}
}

func (idx *Index) children(ref NodeRef) []NodeID {
	if ref.Tree == PathTree {
		return idx.PathNodes[ref.ID].Children
	}
	return idx.TagNodes[ref.ID].Children
}

func (idx *Index) exts(ref NodeRef) []string {
	if ref.Tree == PathTree {
		return idx.PathNodes[ref.ID].Exts
	}
	return idx.TagNodes[ref.ID].Exts
}

// ChildrenOf lists the children of ref in display order, keeping only those
// whose subtree holds at least one extension of filter. A nil filter keeps
// every child. The cost is proportional to the number of children.
func (idx *Index) ChildrenOf(ref NodeRef, filter ExtensionSet) ([]NodeSummary, error) {
	if err := idx.checkRef(ref); err != nil {
		return nil, err
	}
	ids := idx.children(ref)
	out := make([]NodeSummary, 0, len(ids))
	for _, id := range ids {
		child := NodeRef{Tree: ref.Tree, ID: id}
		if !filter.Overlaps(idx.exts(child)) {
			continue
		}
		out = append(out, idx.summary(child))
	}
	return out, nil
}

// Parent returns the parent of ref. The root has no parent.
func (idx *Index) Parent(ref NodeRef) (NodeRef, bool) {
	if idx.checkRef(ref) != nil || ref.ID == RootID {
		return NodeRef{}, false
	}
	var p NodeID
	if ref.Tree == PathTree {
		p = idx.PathNodes[ref.ID].Parent
	} else {
		p = idx.TagNodes[ref.ID].Parent
	}
	parent := NodeRef{Tree: ref.Tree, ID: p}
	if idx.checkRef(parent) != nil || p == ref.ID {
		return NodeRef{}, false
	}
	return parent, true
}

// Ancestors returns the chain from the root's first child down to ref.
func (idx *Index) Ancestors(ref NodeRef) []NodeSummary {
	var chain []NodeSummary
	for cur, ok := ref, idx.checkRef(ref) == nil; ok && cur.ID != RootID; cur, ok = idx.Parent(cur) {
		chain = append(chain, idx.summary(cur))
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// RecordsUnder returns the records below ref in tree order, keeping only those
// whose extension is in filter.
func (idx *Index) RecordsUnder(ref NodeRef, filter ExtensionSet) ([]*TrackRecord, error) {
	if err := idx.checkRef(ref); err != nil {
		return nil, err
	}
	var out []*TrackRecord
	idx.collect(ref, filter, &out)
	return out, nil
}

func (idx *Index) collect(ref NodeRef, filter ExtensionSet, out *[]*TrackRecord) {
	if !filter.Overlaps(idx.exts(ref)) {
		return
	}
	var ids []RecordID
	if ref.Tree == PathTree {
		if n := &idx.PathNodes[ref.ID]; n.Kind == KindFile {
			ids = []RecordID{n.Record}
		}
	} else {
		ids = idx.TagNodes[ref.ID].Records
	}
	for _, id := range ids {
		if rec := &idx.Records[id]; filter.Contains(rec.Extension) {
			*out = append(*out, rec)
		}
	}
	for _, c := range idx.children(ref) {
		idx.collect(NodeRef{Tree: ref.Tree, ID: c}, filter, out)
	}
}

// Flatten returns the path of every record reachable in tree, in tree order.
// Both trees flatten to the same multiset of paths.
func (idx *Index) Flatten(tree TreeKind) []string {
	recs, err := idx.RecordsUnder(idx.Root(tree), nil)
	if err != nil {
		return nil
	}
	paths := make([]string, len(recs))
	for i, r := range recs {
		paths[i] = r.Path
	}
	return paths
}
