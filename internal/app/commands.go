package app

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/export"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/playlist"
	"github.com/llehouerou/shelf/internal/watch"
)

// waitForChannel creates a command that waits for a value from a channel.
// Returns nil if the channel is nil.
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

func (m Model) waitForScan() tea.Cmd {
	return waitForChannel(m.scanCh, func(p library.ScanProgress, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return ScanProgressMsg(p)
	})
}

func (m Model) waitForWatch() tea.Cmd {
	ch := m.changes
	return waitForChannel(ch, func(c watch.Change, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return LibraryChangedMsg{Change: c, source: ch}
	})
}

func rescanCmd(ctx context.Context, lib *library.Library, roots []string, progress chan<- library.ScanProgress) tea.Cmd {
	roots = slices.Clone(roots)
	return func() tea.Msg {
		report, err := lib.Rescan(ctx, roots, progress)
		return ScanFinishedMsg{Report: report, Err: err}
	}
}

func exportCmd(entries []playlist.Entry, dest string, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		err := export.Export(entries, dest, opts)
		return ExportedMsg{Path: dest, Count: len(entries), Err: err}
	}
}

// playCmd exports entries to the cache directory and starts player on the
// document. The player runs detached from the terminal.
func playCmd(entries []playlist.Entry, player string, opts export.Options) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ExportTemp(entries, opts)
		if err != nil {
			return PlayerStartedMsg{Err: err}
		}
		if player == "" {
			return PlayerStartedMsg{Path: path}
		}
		return PlayerStartedMsg{Path: path, Err: startPlayer(player, path)}
	}
}

var errNoPlayer = errors.New("player command is empty")

func startPlayer(player, path string) error {
	args := strings.Fields(player)
	if len(args) == 0 {
		return errNoPlayer
	}
	cmd := exec.Command(args[0], append(args[1:], path)...) //nolint:gosec // the player is user configuration
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
