package library

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// IndexVersion is the layout version of Index. Persisted indexes of another
// version are discarded and rebuilt.
const IndexVersion = 1

// Index is an immutable snapshot of a scan. It is safe for concurrent reads
// and is replaced as a whole by the next scan.
type Index struct {
	Version   int           `json:"version"`
	ScanID    string        `json:"scan_id"`
	Roots     []string      `json:"roots"`
	ScannedAt time.Time     `json:"scanned_at"`
	Records   []TrackRecord `json:"records"`
	PathNodes []PathNode    `json:"path_nodes"`
	TagNodes  []TagNode     `json:"tag_nodes"`

	byPath map[string]NodeID
}

// Empty returns an index with no roots and no records.
func Empty() *Index {
	return Build(nil, nil, time.Time{})
}

func (idx *Index) index() {
	idx.byPath = make(map[string]NodeID, len(idx.PathNodes))
	for i := range idx.PathNodes {
		if p := idx.PathNodes[i].Path; p != "" {
			idx.byPath[p] = NodeID(i)
		}
	}
}

// Restore checks the references of a decoded index and rebuilds the lookups
// that are not persisted. It must be called before using a decoded Index.
func (idx *Index) Restore() error {
	if err := idx.validate(); err != nil {
		return err
	}
	idx.index()
	return nil
}

func (idx *Index) validate() error {
	if idx.Version != IndexVersion {
		return fmt.Errorf("index version %d, want %d", idx.Version, IndexVersion)
	}
	if len(idx.PathNodes) == 0 || idx.PathNodes[RootID].Kind != KindRoot {
		return errors.New("path tree has no root")
	}
	if len(idx.TagNodes) == 0 || idx.TagNodes[RootID].Kind != KindRoot {
		return errors.New("tag tree has no root")
	}

	err := checkTree(PathTree, len(idx.PathNodes), len(idx.Records), func(id NodeID) (NodeID, []NodeID, []RecordID) {
		n := &idx.PathNodes[id]
		if n.Kind == KindFile {
			return n.Parent, n.Children, []RecordID{n.Record}
		}
		return n.Parent, n.Children, nil
	})
	if err != nil {
		return err
	}
	return checkTree(TagTree, len(idx.TagNodes), len(idx.Records), func(id NodeID) (NodeID, []NodeID, []RecordID) {
		n := &idx.TagNodes[id]
		return n.Parent, n.Children, n.Records
	})
}

// checkTree walks a tree from its root and verifies that every node is
// reached once from the parent it names and every record is referenced
// exactly once.
func checkTree(tree TreeKind, nNodes, nRecords int, edges func(NodeID) (NodeID, []NodeID, []RecordID)) error {
	visited := make([]bool, nNodes)
	seen := make([]bool, nRecords)
	stack := []NodeID{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return fmt.Errorf("%s tree: node %d reached twice", tree, id)
		}
		visited[id] = true

		_, children, records := edges(id)
		for _, c := range children {
			if int(c) >= nNodes {
				return fmt.Errorf("%s tree: node %d has bad child %d", tree, id, c)
			}
			if parent, _, _ := edges(c); parent != id {
				return fmt.Errorf("%s tree: node %d names parent %d, listed by %d", tree, c, parent, id)
			}
			stack = append(stack, c)
		}
		for _, r := range records {
			if int(r) >= nRecords || seen[r] {
				return fmt.Errorf("%s tree: node %d has bad record %d", tree, id, r)
			}
			seen[r] = true
		}
	}
	for id, ok := range visited {
		if !ok {
			return fmt.Errorf("%s tree: node %d unreachable", tree, id)
		}
	}
	for r, ok := range seen {
		if !ok {
			return fmt.Errorf("%s tree: record %d unreachable", tree, r)
		}
	}
	return nil
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.Records)
}

// Root returns the synthetic root of tree.
func (idx *Index) Root(tree TreeKind) NodeRef {
	return NodeRef{Tree: tree, ID: RootID}
}

// Lookup returns the path-tree node of a directory or file path.
func (idx *Index) Lookup(path string) (NodeRef, bool) {
	id, ok := idx.byPath[filepath.Clean(path)]
	if !ok {
		return NodeRef{}, false
	}
	return NodeRef{Tree: PathTree, ID: id}, true
}

// Record returns the record stored for path.
func (idx *Index) Record(path string) (*TrackRecord, bool) {
	ref, ok := idx.Lookup(path)
	if !ok {
		return nil, false
	}
	n := &idx.PathNodes[ref.ID]
	if n.Kind != KindFile {
		return nil, false
	}
	return &idx.Records[n.Record], true
}

// RecordByID returns the record with the given id.
func (idx *Index) RecordByID(id RecordID) (*TrackRecord, bool) {
	if int(id) >= len(idx.Records) {
		return nil, false
	}
	return &idx.Records[id], true
}
