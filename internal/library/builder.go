package library

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// NormalizeRoots cleans roots into absolute paths, drops duplicates and folds
// roots nested below another root into that ancestor. The result is sorted.
func NormalizeRoots(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if abs, err := filepath.Abs(r); err == nil {
			r = abs
		}
		cleaned = append(cleaned, filepath.Clean(r))
	}
	slices.Sort(cleaned)
	cleaned = slices.Compact(cleaned)

	// An ancestor sorts before its descendants, but not always right before
	// them: "/a b" falls between "/a" and "/a/c".
	out := cleaned[:0]
	for _, r := range cleaned {
		if slices.ContainsFunc(out, func(kept string) bool { return isWithin(kept, r) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	if path == dir {
		return true
	}
	if dir == string(filepath.Separator) {
		return strings.HasPrefix(path, dir)
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

// Build assembles an Index from records found under roots. It is pure: the
// same roots and records always produce the same trees, whatever their
// input order. Records sharing a path keep the last occurrence.
func Build(roots []string, records []TrackRecord, scannedAt time.Time) *Index {
	idx := &Index{
		Version:   IndexVersion,
		Roots:     NormalizeRoots(roots),
		ScannedAt: scannedAt,
		Records:   dedupeRecords(records),
	}

	b := builder{
		idx:     idx,
		dirs:    make(map[string]NodeID),
		tagKids: make(map[tagKey]NodeID),
	}
	b.build()
	idx.index()
	return idx
}

func dedupeRecords(records []TrackRecord) []TrackRecord {
	byPath := make(map[string]int, len(records))
	out := make([]TrackRecord, 0, len(records))
	for _, r := range records {
		r.Path = filepath.Clean(r.Path)
		if r.Extension == "" {
			r.Extension = ExtensionOf(r.Path)
		}
		if i, ok := byPath[r.Path]; ok {
			out[i] = r
			continue
		}
		byPath[r.Path] = len(out)
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b TrackRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

type tagKey struct {
	parent NodeID
	name   string
}

type builder struct {
	idx     *Index
	dirs    map[string]NodeID // directory path to path-tree node
	tagKids map[tagKey]NodeID
}

func (b *builder) build() {
	b.idx.PathNodes = []PathNode{{Kind: KindRoot}}
	b.idx.TagNodes = []TagNode{{Kind: KindRoot}}

	for _, root := range b.idx.Roots {
		b.addDir(RootID, root, root)
	}

	for i := range b.idx.Records {
		id := RecordID(i)
		b.insertPath(id)
		b.insertTags(id)
	}

	b.finishPath(RootID)
	b.finishTags(RootID)
}

func (b *builder) addDir(parent NodeID, path, name string) NodeID {
	id := NodeID(len(b.idx.PathNodes))
	b.idx.PathNodes = append(b.idx.PathNodes, PathNode{
		Name:   name,
		Path:   path,
		Kind:   KindDirectory,
		Parent: parent,
	})
	b.idx.PathNodes[parent].Children = append(b.idx.PathNodes[parent].Children, id)
	b.dirs[path] = id
	return id
}

// dirNode returns the node for dir, creating the chain down from the root
// containing it. Directories outside every root hang off the synthetic root.
func (b *builder) dirNode(dir string) NodeID {
	if id, ok := b.dirs[dir]; ok {
		return id
	}
	for _, root := range b.idx.Roots {
		if isWithin(root, dir) {
			parent := b.dirNode(filepath.Dir(dir))
			return b.addDir(parent, dir, filepath.Base(dir))
		}
	}
	return b.addDir(RootID, dir, dir)
}

func (b *builder) insertPath(id RecordID) {
	rec := &b.idx.Records[id]
	parent := b.dirNode(filepath.Dir(rec.Path))
	node := NodeID(len(b.idx.PathNodes))
	b.idx.PathNodes = append(b.idx.PathNodes, PathNode{
		Name:   filepath.Base(rec.Path),
		Path:   rec.Path,
		Kind:   KindFile,
		Parent: parent,
		Record: id,
		Exts:   []string{rec.Extension},
		Count:  1,
	})
	b.idx.PathNodes[parent].Children = append(b.idx.PathNodes[parent].Children, node)
}

func bucketName(v string) string {
	if v == "" {
		return UnknownName
	}
	return v
}

func (b *builder) tagChild(parent NodeID, kind NodeKind, name string) NodeID {
	key := tagKey{parent: parent, name: name}
	if id, ok := b.tagKids[key]; ok {
		return id
	}
	id := NodeID(len(b.idx.TagNodes))
	b.idx.TagNodes = append(b.idx.TagNodes, TagNode{
		Name:   name,
		Kind:   kind,
		Parent: parent,
	})
	b.idx.TagNodes[parent].Children = append(b.idx.TagNodes[parent].Children, id)
	b.tagKids[key] = id
	return id
}

func (b *builder) insertTags(id RecordID) {
	t := b.idx.Records[id].Tags
	genre := b.tagChild(RootID, KindGenre, bucketName(t.Genre))
	artist := b.tagChild(genre, KindArtist, bucketName(t.Artist))
	album := b.tagChild(artist, KindAlbum, bucketName(t.Album))
	track := b.tagChild(album, KindTrack, bucketName(t.Title))
	b.idx.TagNodes[track].Records = append(b.idx.TagNodes[track].Records, id)
}

// finishPath sorts children and aggregates counts and extensions bottom-up.
func (b *builder) finishPath(id NodeID) ([]string, int) {
	n := &b.idx.PathNodes[id]
	if n.Kind == KindFile {
		return n.Exts, n.Count
	}

	var exts []string
	count := 0
	for _, c := range n.Children {
		e, k := b.finishPath(c)
		exts = append(exts, e...)
		count += k
	}

	nodes := b.idx.PathNodes
	n = &nodes[id]
	slices.SortFunc(n.Children, func(x, y NodeID) int {
		return comparePathNodes(&nodes[x], &nodes[y])
	})
	n.Exts = sortedUnique(exts)
	n.Count = count
	return n.Exts, n.Count
}

func (b *builder) finishTags(id NodeID) ([]string, int) {
	nodes := b.idx.TagNodes
	n := &nodes[id]

	var exts []string
	count := 0
	if n.Kind == KindTrack {
		for _, r := range n.Records {
			exts = append(exts, b.idx.Records[r].Extension)
		}
		count = len(n.Records)
	}
	for _, c := range n.Children {
		e, k := b.finishTags(c)
		exts = append(exts, e...)
		count += k
	}

	slices.SortFunc(n.Children, func(x, y NodeID) int {
		return compareTagNames(nodes[x].Name, nodes[y].Name)
	})
	n.Exts = sortedUnique(exts)
	n.Count = count
	return n.Exts, n.Count
}

func sortedUnique(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	s = slices.Clone(s)
	slices.Sort(s)
	return slices.Compact(s)
}

// compareFold orders strings case-insensitively, breaking ties on the exact
// string so the order is total.
func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// comparePathNodes lists directories before files, then orders by name.
func comparePathNodes(a, b *PathNode) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return compareFold(a.Name, b.Name)
}

// compareTagNames orders by name with the Unknown bucket last.
func compareTagNames(a, b string) int {
	au, bu := a == UnknownName, b == UnknownName
	switch {
	case au && !bu:
		return 1
	case bu && !au:
		return -1
	}
	return compareFold(a, b)
}
