// Package watch flags a library as stale when files under its roots change.
// It never touches the index; callers decide when to rescan.
package watch

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/shelf/internal/library"
)

// DefaultDebounce is the quiet period after the last event before a Change
// is emitted.
const DefaultDebounce = 2 * time.Second

// Change is emitted once a burst of filesystem events has settled.
type Change struct {
	Paths []string // affected paths, sorted and deduplicated
}

type Options struct {
	Extensions library.ExtensionSet // nil matches every file
	Debounce   time.Duration
	Logger     logrus.FieldLogger
}

type Watcher struct {
	fs       *fsnotify.Watcher
	exts     library.ExtensionSet
	debounce time.Duration
	log      logrus.FieldLogger

	changes chan Change
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts watching every directory below roots. Directories that cannot
// be watched are logged and skipped.
func New(roots []string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:       fw,
		exts:     opts.Extensions,
		debounce: opts.Debounce,
		log:      opts.Logger,
		changes:  make(chan Change, 1),
		done:     make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		w.log = l
	}

	for _, root := range roots {
		w.addTree(root)
	}

	w.wg.Go(w.run)
	w.log.WithField("roots", len(roots)).Debug("file watcher started")
	return w, nil
}

// Changes delivers debounced change notifications. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.WithError(err).WithField("path", path).Debug("skipping unwatchable path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && hidden(path) {
			return fs.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.log.WithError(err).WithField("path", path).Warn("cannot watch directory")
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		w.log.WithError(err).WithField("root", root).Warn("cannot watch root")
	}
}

func (w *Watcher) run() {
	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.emit(pending)
			pending = make(map[string]struct{})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("file watcher error")
		}
	}
}

// relevant reports whether event may change the index. New directories are
// watched as a side effect.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if hidden(event.Name) || strings.HasSuffix(event.Name, ".tmp") {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addTree(event.Name)
			return true
		}
	}
	if w.exts.MatchPath(event.Name) {
		return true
	}
	// A removed or renamed directory can no longer be stat'ed.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return filepath.Ext(event.Name) == ""
	}
	return false
}

func (w *Watcher) emit(pending map[string]struct{}) {
	if len(pending) == 0 {
		return
	}
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	w.log.WithField("paths", len(paths)).Info("library changed on disk")
	select {
	case w.changes <- Change{Paths: paths}:
	default:
		// A change is already queued; the consumer only needs one.
	}
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
