package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/shelf/internal/app"
	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/errmsg"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/logging"
	"github.com/llehouerou/shelf/internal/state"
	"github.com/llehouerou/shelf/internal/watch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	// The screen belongs to bubbletea, so logs always go to a file.
	if cfg.Log.File == "" {
		path, err := xdg.StateFile(filepath.Join("shelf", "shelf.log"))
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpInitialize, err))
		}
		cfg.Log.File = path
	}
	logger, logCloser, err := logging.New(cfg.Log, io.Discard)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer logCloser.Close()

	dbPath := cfg.DatabasePath()
	if dbPath == "" {
		dbPath, err = state.DefaultPath()
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpInitialize, err))
		}
	}

	// The sidecar is read before the database is opened.
	roots, err := state.ReadRoots(state.SidecarPath(filepath.Dir(dbPath)))
	if err != nil {
		logger.WithError(err).Warn("ignoring unreadable roots sidecar")
		roots = nil
	}

	st, err := state.Open(dbPath)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpLibraryLoad, dbPath, err))
	}
	defer st.Close()

	exts := library.NewExtensionSet(cfg.GetExtensions()...)
	lib := library.New(st, library.Options{
		Extensions: exts,
		Workers:    cfg.GetWorkers(),
		Logger:     logger,
	})

	m, err := app.New(app.Deps{
		Config:  cfg,
		State:   st,
		Library: lib,
		Logger:  logger,
		Roots:   roots,
		Watch:   app.NewWatchFunc(exts, watch.Options{Logger: logger}),
	})
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	return err
}
