package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/library"
)

// startScan rebuilds the index from the tracked roots in the background.
func (m Model) startScan() (tea.Model, tea.Cmd) {
	if m.scanning {
		m.setError(errmsg.Format(errmsg.OpLibraryScan, library.ErrScanInProgress))
		return m, nil
	}
	if len(m.roots) == 0 {
		m.setStatus("No library roots yet: press + to track a directory")
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.scanning = true
	m.scanCancel = cancel
	m.scanCh = make(chan library.ScanProgress, 16)
	m.progress = library.ScanProgress{Phase: library.PhaseScanning}
	m.setStatus("Scanning library...")

	return m, tea.Batch(
		rescanCmd(ctx, m.lib, m.roots, m.scanCh),
		m.waitForScan(),
	)
}

// handleLibraryScanMsg routes library scan messages.
func (m Model) handleLibraryScanMsg(msg LibraryScanMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScanProgressMsg:
		m.progress = library.ScanProgress(msg)
		return m, m.waitForScan()
	case ScanFinishedMsg:
		return m.handleScanFinished(msg)
	}
	return m, nil
}

func (m Model) handleScanFinished(msg ScanFinishedMsg) (tea.Model, tea.Cmd) {
	m.scanning = false
	m.scanCh = nil
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}

	if m.rescanNext {
		m.rescanNext = false
		if msg.Report != nil && !errors.Is(msg.Err, context.Canceled) {
			m.reloadBrowser()
		}
		return m.startScan()
	}

	switch {
	case errors.Is(msg.Err, context.Canceled):
		m.setStatus("Scan canceled")
		return m, nil
	case msg.Err != nil && msg.Report == nil:
		m.setError(errmsg.Format(errmsg.OpLibraryScan, msg.Err))
		return m, nil
	}

	// A report means the new index is published, even if saving it failed.
	m.stale = false
	m.reloadBrowser()

	r := msg.Report
	if msg.Err != nil {
		m.setError(errmsg.Format(errmsg.OpLibrarySave, msg.Err))
		return m, nil
	}
	summary := fmt.Sprintf("Indexed %s files in %s", humanize.Comma(int64(r.Files)), r.Elapsed.Round(time.Millisecond))
	if problems := len(r.Warnings) + len(r.Failures); problems > 0 {
		summary += fmt.Sprintf(" (%d unreadable: %s)", problems, errmsg.FirstLine(r.Err().Error()))
		m.log.WithFields(logrus.Fields{
			"warnings": len(r.Warnings),
			"failures": len(r.Failures),
		}).Debug(r.Err())
	}
	m.setStatus(summary)
	return m, nil
}
