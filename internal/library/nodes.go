package library

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeID identifies a node inside one of the trees of an Index.
// ID 0 is the synthetic root of each tree.
type NodeID uint32

// RootID is the synthetic root of both trees.
const RootID NodeID = 0

// UnknownName is the bucket name used at any tag level whose value is missing.
const UnknownName = "Unknown"

// TreeKind selects one of the two views of an Index.
type TreeKind uint8

const (
	PathTree TreeKind = iota
	TagTree
)

func (k TreeKind) String() string {
	switch k {
	case PathTree:
		return "path"
	case TagTree:
		return "tag"
	default:
		return "tree(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseTreeKind parses the String form of a TreeKind.
func ParseTreeKind(s string) (TreeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "path", "directory", "":
		return PathTree, nil
	case "tag", "tags":
		return TagTree, nil
	default:
		return 0, fmt.Errorf("unknown tree kind %q", s)
	}
}

// NodeKind is the role of a node in its tree.
type NodeKind uint8

const (
	KindRoot NodeKind = iota
	KindDirectory
	KindFile
	KindGenre
	KindArtist
	KindAlbum
	KindTrack
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindGenre:
		return "genre"
	case KindArtist:
		return "artist"
	case KindAlbum:
		return "album"
	case KindTrack:
		return "track"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsLeaf reports whether nodes of this kind reference records directly.
func (k NodeKind) IsLeaf() bool {
	return k == KindFile || k == KindTrack
}

// NodeRef names a node of either tree. It stays valid for the Index it was
// obtained from.
type NodeRef struct {
	Tree TreeKind
	ID   NodeID
}

func (r NodeRef) String() string {
	return r.Tree.String() + ":" + strconv.FormatUint(uint64(r.ID), 10)
}

// ParseNodeRef parses the String form of a NodeRef, e.g. "tag:12".
func ParseNodeRef(s string) (NodeRef, error) {
	tree, id, ok := strings.Cut(s, ":")
	if !ok {
		return NodeRef{}, fmt.Errorf("invalid node ref %q", s)
	}
	kind, err := ParseTreeKind(tree)
	if err != nil {
		return NodeRef{}, err
	}
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return NodeRef{}, fmt.Errorf("invalid node ref %q: %w", s, err)
	}
	return NodeRef{Tree: kind, ID: NodeID(n)}, nil
}

// PathNode is a directory or file of the path tree. The children of the
// synthetic root are the scan roots.
type PathNode struct {
	Name     string   `json:"n"`
	Path     string   `json:"p,omitempty"`
	Kind     NodeKind `json:"k"`
	Parent   NodeID   `json:"u"`
	Children []NodeID `json:"c,omitempty"`
	Record   RecordID `json:"r,omitempty"` // KindFile only
	Exts     []string `json:"e,omitempty"` // extensions present in the subtree, sorted
	Count    int      `json:"t"`           // records in the subtree
}

// TagNode is a genre, artist, album or track of the tag tree. Track nodes
// hold every record sharing the same title under their album.
type TagNode struct {
	Name     string     `json:"n"`
	Kind     NodeKind   `json:"k"`
	Parent   NodeID     `json:"u"`
	Children []NodeID   `json:"c,omitempty"`
	Records  []RecordID `json:"r,omitempty"` // KindTrack only
	Exts     []string   `json:"e,omitempty"`
	Count    int        `json:"t"`
}

// Unknown reports whether the node is the bucket for a missing tag value.
func (n *TagNode) Unknown() bool {
	return n.Kind != KindRoot && n.Name == UnknownName
}

// NodeSummary describes a node for display.
type NodeSummary struct {
	Ref   NodeRef
	Name  string
	Kind  NodeKind
	Path  string // path tree only
	Count int
	Exts  []string
}

// IsContainer reports whether the node can be descended into.
func (s NodeSummary) IsContainer() bool {
	return !s.Kind.IsLeaf()
}

// ID returns the string form of the node reference.
func (s NodeSummary) ID() string {
	return s.Ref.String()
}

// DisplayName returns the node name.
func (s NodeSummary) DisplayName() string {
	return s.Name
}
