package library

import (
	"strings"
)

// TreeSource presents one tree of an Index, seen through an extension
// filter, as a browsable hierarchy of NodeSummary values.
type TreeSource struct {
	idx    *Index
	tree   TreeKind
	filter ExtensionSet
}

// NewTreeSource returns a source over tree. A nil idx browses an empty
// library.
func NewTreeSource(idx *Index, tree TreeKind, filter ExtensionSet) *TreeSource {
	if idx == nil {
		idx = Empty()
	}
	return &TreeSource{idx: idx, tree: tree, filter: filter}
}

func (s *TreeSource) Index() *Index { return s.idx }
func (s *TreeSource) Tree() TreeKind { return s.tree }
func (s *TreeSource) Filter() ExtensionSet { return s.filter }

func (s *TreeSource) Root() NodeSummary {
	return s.idx.summary(s.idx.Root(s.tree))
}

func (s *TreeSource) Children(parent NodeSummary) ([]NodeSummary, error) {
	return s.idx.ChildrenOf(parent.Ref, s.filter)
}

func (s *TreeSource) Parent(node NodeSummary) *NodeSummary {
	ref, ok := s.idx.Parent(node.Ref)
	if !ok {
		return nil
	}
	p := s.idx.summary(ref)
	return &p
}

// DisplayPath returns the directory path in the path tree and the
// " / "-joined chain of names in the tag tree.
func (s *TreeSource) DisplayPath(node NodeSummary) string {
	if node.Ref.ID == RootID {
		if s.tree == TagTree {
			return "Genres"
		}
		return "Library"
	}
	if s.tree == PathTree {
		return node.Path
	}
	chain := s.idx.Ancestors(node.Ref)
	names := make([]string, len(chain))
	for i, n := range chain {
		names[i] = n.Name
	}
	return strings.Join(names, " / ")
}

func (s *TreeSource) NodeFromID(id string) (NodeSummary, bool) {
	ref, err := ParseNodeRef(id)
	if err != nil || ref.Tree != s.tree {
		return NodeSummary{}, false
	}
	n, err := s.idx.Node(ref)
	if err != nil {
		return NodeSummary{}, false
	}
	return n, true
}
