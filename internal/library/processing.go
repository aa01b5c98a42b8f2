package library

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultWorkers is the number of concurrent extractions used when
// Options.Workers is not set.
const DefaultWorkers = 8

type extractResult struct {
	root   string
	record TrackRecord
	err    error
}

// collect walks roots and extracts every candidate in parallel. Warnings and
// failures are accumulated into report; progress receives "scanning" and
// "processing" updates. Records are returned in completion order.
func (l *Library) collect(
	ctx context.Context,
	roots []string,
	report *ScanReport,
	progress chan<- ScanProgress,
) []TrackRecord {
	var discovered, processed atomic.Int64

	workCh := make(chan Candidate, 64)
	resultCh := make(chan extractResult, 64)

	var wg sync.WaitGroup
	for range l.workers() {
		wg.Go(func() {
			for c := range workCh {
				if ctx.Err() != nil {
					processed.Add(1)
					continue
				}
				rec, err := l.extract(c.Path)
				resultCh <- extractResult{root: c.Root, record: rec, err: err}
				processed.Add(1)
			}
		})
	}

	// Walk on its own goroutine; warnings are only read after wg.Wait.
	var warnings []error
	go func() {
		defer close(workCh)
		for c, err := range Walk(ctx, roots, l.opts.Extensions) {
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			n := discovered.Add(1)
			if n%100 == 0 {
				send(progress, ScanProgress{Phase: PhaseScanning, Current: int(n)})
			}
			select {
			case workCh <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan struct{})
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				send(progress, ScanProgress{
					Phase:   PhaseProcessing,
					Current: int(processed.Load()),
					Total:   int(discovered.Load()),
				})
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var records []TrackRecord
	for r := range resultCh {
		records = append(records, r.record)
		report.Files++
		report.BySource[r.root]++
		if r.err != nil {
			report.Failures = append(report.Failures, r.err)
			l.log.WithError(r.err).Debug("tag extraction failed")
			continue
		}
		if !r.record.Tags.IsZero() {
			report.Tagged++
		}
	}
	close(done)
	<-reporterDone

	report.Warnings = warnings
	total := int(discovered.Load())
	send(progress, ScanProgress{Phase: PhaseProcessing, Current: int(processed.Load()), Total: total})
	return records
}

func (l *Library) workers() int {
	if l.opts.Workers > 0 {
		return l.opts.Workers
	}
	return DefaultWorkers
}

func send(progress chan<- ScanProgress, p ScanProgress) {
	if progress != nil {
		progress <- p
	}
}
