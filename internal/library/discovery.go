package library

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Candidate is an audio file found by Walk.
type Candidate struct {
	Path string
	Root string // root the file was reached from
}

// Walk lazily yields every regular file below roots whose extension is in
// exts. Symlinked directories are followed; a directory whose real path was
// already visited is skipped, so link cycles terminate. Hidden entries are
// skipped.
//
// Problems are yielded as a zero Candidate and a *WalkWarning; the walk
// continues past them. The sequence stops early when ctx is done.
func Walk(ctx context.Context, roots []string, exts ExtensionSet) iter.Seq2[Candidate, error] {
	return func(yield func(Candidate, error) bool) {
		w := walker{
			ctx:     ctx,
			exts:    exts,
			visited: make(map[string]struct{}),
			yield:   yield,
		}
		for _, root := range roots {
			abs, err := filepath.Abs(root)
			if err != nil {
				if !yield(Candidate{}, &WalkWarning{Path: root, Err: err}) {
					return
				}
				continue
			}
			if !w.walkDir(abs, abs) {
				return
			}
		}
	}
}

type walker struct {
	ctx     context.Context
	exts    ExtensionSet
	visited map[string]struct{}
	yield   func(Candidate, error) bool
}

func (w *walker) warn(path string, err error) bool {
	return w.yield(Candidate{}, &WalkWarning{Path: path, Err: err})
}

// walkDir returns false once the consumer stopped or ctx is done.
func (w *walker) walkDir(root, dir string) bool {
	if w.ctx.Err() != nil {
		return false
	}

	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return w.warn(dir, err)
	}
	if _, seen := w.visited[realPath]; seen {
		return w.warn(dir, errAlreadyVisited)
	}
	w.visited[realPath] = struct{}{}

	// ReadDir returns the entries read before an error; walk those too.
	entries, err := os.ReadDir(dir)
	if err != nil && !w.warn(dir, err) {
		return false
	}

	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		mode := e.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				if !w.warn(path, err) {
					return false
				}
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if !w.walkDir(root, path) {
				return false
			}
		case mode.IsRegular():
			if !w.exts.MatchPath(path) {
				continue
			}
			if !w.yield(Candidate{Path: path, Root: root}, nil) {
				return false
			}
		}
	}
	return true
}
