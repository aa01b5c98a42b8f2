package library

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Scan phases reported through ScanProgress.
const (
	PhaseScanning   = "scanning"
	PhaseProcessing = "processing"
	PhaseBuilding   = "building"
	PhaseSaving     = "saving"
	PhaseDone       = "done"
)

// ScanProgress reports the progress of a rescan.
type ScanProgress struct {
	Phase   string
	Current int
	Total   int
	Report  *ScanReport // only set when Phase == PhaseDone
}

// ScanReport summarizes a completed rescan.
type ScanReport struct {
	ScanID   string
	Roots    []string
	Files    int            // files indexed
	Tagged   int            // files with at least one tag value
	BySource map[string]int // files indexed per root
	Warnings []error        // *WalkWarning
	Failures []error        // *ExtractionFailure
	Elapsed  time.Duration
}

// Err combines every warning and failure of the scan, or returns nil.
func (r *ScanReport) Err() error {
	return multierr.Combine(append(append([]error(nil), r.Warnings...), r.Failures...)...)
}

// Store persists the current index.
type Store interface {
	PutIndex(idx *Index) error
	// GetIndex returns (nil, nil) when no index was ever stored. Errors for
	// undecodable data implement Corrupt() bool.
	GetIndex() (*Index, error)
}

// Options configure a Library.
type Options struct {
	Extensions ExtensionSet // extensions to index; nil indexes every file
	Workers    int
	Extract    ExtractFunc // defaults to Extract
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

// LoadStatus is the outcome of Library.Load.
type LoadStatus int

const (
	// Loaded means a stored index was restored.
	Loaded LoadStatus = iota
	// NeedsRescan means nothing usable was stored; the library is empty
	// until the next Rescan.
	NeedsRescan
)

// Library owns the current Index and replaces it atomically on rescan.
type Library struct {
	store    Store
	opts     Options
	log      logrus.FieldLogger
	extract  ExtractFunc
	current  atomic.Pointer[Index]
	scanning atomic.Bool
}

// New creates a Library publishing an empty index until Load or Rescan.
func New(store Store, opts Options) *Library {
	l := &Library{
		store:   store,
		opts:    opts,
		log:     opts.Logger,
		extract: opts.Extract,
	}
	if l.log == nil {
		l.log = logrus.StandardLogger()
	}
	if l.extract == nil {
		l.extract = Extract
	}
	if l.opts.Now == nil {
		l.opts.Now = time.Now
	}
	l.current.Store(Empty())
	return l
}

// Current returns the published index. It never returns nil.
func (l *Library) Current() *Index {
	return l.current.Load()
}

// Scanning reports whether a rescan is running.
func (l *Library) Scanning() bool {
	return l.scanning.Load()
}

// Load publishes the stored index. A corrupt or incompatible stored index is
// discarded with a warning and reported as NeedsRescan; other store errors
// are returned.
func (l *Library) Load() (LoadStatus, error) {
	idx, err := l.store.GetIndex()
	switch {
	case IsCorrupt(err):
		l.log.WithError(err).Warn("stored index unusable, rescan required")
		return NeedsRescan, nil
	case err != nil:
		return NeedsRescan, fmt.Errorf("load index: %w", err)
	case idx == nil:
		return NeedsRescan, nil
	}

	l.current.Store(idx)
	l.log.WithFields(logrus.Fields{
		"scan_id": idx.ScanID,
		"records": idx.Len(),
	}).Info("index loaded")
	return Loaded, nil
}

// Rescan walks roots, rebuilds the index from scratch, publishes it and then
// persists it. Only one rescan runs at a time; a concurrent call returns
// ErrScanInProgress. When ctx is canceled nothing is published.
//
// progress may be nil. Otherwise it receives phase updates, ending with a
// PhaseDone update carrying the report, and is closed when Rescan returns.
// If persisting fails the new index stays published and the error is
// returned with the report.
func (l *Library) Rescan(ctx context.Context, roots []string, progress chan<- ScanProgress) (*ScanReport, error) {
	if progress != nil {
		defer close(progress)
	}
	if !l.scanning.CompareAndSwap(false, true) {
		return nil, ErrScanInProgress
	}
	defer l.scanning.Store(false)

	started := l.opts.Now()
	roots = NormalizeRoots(roots)
	report := &ScanReport{
		ScanID:   uuid.NewString(),
		Roots:    roots,
		BySource: make(map[string]int, len(roots)),
	}
	log := l.log.WithField("scan_id", report.ScanID)
	log.WithField("roots", roots).Info("rescan started")

	send(progress, ScanProgress{Phase: PhaseScanning})
	records := l.collect(ctx, roots, report, progress)
	if err := ctx.Err(); err != nil {
		log.Info("rescan canceled")
		return report, err
	}

	send(progress, ScanProgress{Phase: PhaseBuilding, Total: len(records)})
	idx := Build(roots, records, started)
	idx.ScanID = report.ScanID
	l.current.Store(idx)

	send(progress, ScanProgress{Phase: PhaseSaving})
	report.Elapsed = l.opts.Now().Sub(started)
	saveErr := l.store.PutIndex(idx)

	fields := logrus.Fields{
		"files":    report.Files,
		"tagged":   report.Tagged,
		"warnings": len(report.Warnings),
		"failures": len(report.Failures),
		"elapsed":  report.Elapsed,
	}
	if saveErr != nil {
		log.WithFields(fields).WithError(saveErr).Error("rescan finished, index not saved")
		send(progress, ScanProgress{Phase: PhaseDone, Current: report.Files, Total: report.Files, Report: report})
		return report, fmt.Errorf("save index: %w", saveErr)
	}
	log.WithFields(fields).Info("rescan finished")
	send(progress, ScanProgress{Phase: PhaseDone, Current: report.Files, Total: report.Files, Report: report})
	return report, nil
}
