// shelfscan rescans the library without the terminal client and prints a
// summary. With -xspf it also exports every indexed track as one playlist.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/llehouerou/shelf/internal/config"
	"github.com/llehouerou/shelf/internal/export"
	"github.com/llehouerou/shelf/internal/library"
	"github.com/llehouerou/shelf/internal/logging"
	"github.com/llehouerou/shelf/internal/playlist"
	"github.com/llehouerou/shelf/internal/state"
)

var errNoRoots = errors.New("no roots: pass directories or configure roots")

type options struct {
	db      string
	xspf    string
	workers int
	verbose bool
	roots   []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "shelfscan:", err)
		}
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("shelfscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.db, "db", "", "state database (default: configured or XDG data dir)")
	fs.StringVar(&opts.xspf, "xspf", "", "export every indexed track to this XSPF file")
	fs.IntVar(&opts.workers, "workers", 0, "concurrent tag readers (default: configured)")
	fs.BoolVar(&opts.verbose, "v", false, "log at debug level")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: shelfscan [flags] [root ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.roots = fs.Args()
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
	logger, logCloser, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	dbPath := opts.db
	if dbPath == "" {
		dbPath = cfg.DatabasePath()
	}
	if dbPath == "" {
		if dbPath, err = state.DefaultPath(); err != nil {
			return err
		}
	}
	sidecar := state.SidecarPath(filepath.Dir(dbPath))

	roots, err := resolveRoots(opts.roots, sidecar, cfg, logger)
	if err != nil {
		return err
	}

	st, err := state.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	workers := opts.workers
	if workers <= 0 {
		workers = cfg.GetWorkers()
	}
	lib := library.New(st, library.Options{
		Extensions: library.NewExtensionSet(cfg.GetExtensions()...),
		Workers:    workers,
		Logger:     logger,
	})

	progress := make(chan library.ScanProgress, 16)
	go func() {
		for p := range progress {
			logger.WithFields(logrus.Fields{
				"phase":   p.Phase,
				"current": p.Current,
				"total":   p.Total,
			}).Debug("scan progress")
		}
	}()

	report, err := lib.Rescan(ctx, roots, progress)
	if report == nil {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	printReport(stdout, report, lib.Current())
	if err != nil {
		return err
	}

	// Explicit roots replace the tracked ones, as editing roots in the client does.
	if len(opts.roots) > 0 {
		if err := saveRoots(st, sidecar, report.Roots); err != nil {
			logger.WithError(err).Warn("roots not saved")
		}
	}

	if opts.xspf != "" {
		n, err := exportAll(lib.Current(), opts.xspf)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported %s tracks to %s\n", humanize.Comma(int64(n)), opts.xspf)
	}
	return nil
}

// resolveRoots picks the roots to scan: arguments first, then the sidecar
// written by the terminal client, then the config file.
func resolveRoots(args []string, sidecar string, cfg *config.Config, log logrus.FieldLogger) ([]string, error) {
	if len(args) > 0 {
		roots := make([]string, 0, len(args))
		for _, a := range args {
			abs, err := filepath.Abs(a)
			if err != nil {
				return nil, err
			}
			roots = append(roots, abs)
		}
		return roots, nil
	}

	saved, err := state.ReadRoots(sidecar)
	if err != nil {
		log.WithError(err).Warn("ignoring unreadable roots sidecar")
	}
	if len(saved) > 0 {
		return saved, nil
	}
	if len(cfg.Roots) > 0 {
		return cfg.Roots, nil
	}
	return nil, errNoRoots
}

// saveRoots records roots in the stored preferences and the sidecar,
// keeping the other preferences.
func saveRoots(st *state.Manager, sidecar string, roots []string) error {
	prefs, err := st.GetConfig()
	if err != nil || prefs == nil {
		prefs = &state.Config{}
	}
	prefs.Roots = roots
	return multierr.Append(st.PutConfig(*prefs), state.WriteRoots(sidecar, roots))
}

func printReport(w io.Writer, r *library.ScanReport, idx *library.Index) {
	fmt.Fprintf(w, "Indexed %s files (%s tagged) in %s\n",
		humanize.Comma(int64(r.Files)), humanize.Comma(int64(r.Tagged)), r.Elapsed.Round(time.Millisecond))
	for _, root := range r.Roots {
		fmt.Fprintf(w, "  %s: %s\n", root, humanize.Comma(int64(r.BySource[root])))
	}

	if genres, err := idx.ChildrenOf(idx.Root(library.TagTree), nil); err == nil {
		fmt.Fprintf(w, "Genres: %d\n", len(genres))
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "Warnings (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			fmt.Fprintf(w, "  %v\n", e)
		}
	}
	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "Failures (%d):\n", len(r.Failures))
		for _, e := range r.Failures {
			fmt.Fprintf(w, "  %v\n", e)
		}
	}
}

// exportAll writes every track of the path tree, in tree order.
func exportAll(idx *library.Index, dest string) (int, error) {
	pl := playlist.New()
	n, err := pl.AddDirectory(idx, idx.Root(library.PathTree), nil)
	if err != nil {
		return 0, err
	}
	if err := export.Export(pl.Entries(), dest, export.Options{Title: "Library", Creator: "shelfscan"}); err != nil {
		return 0, err
	}
	return n, nil
}
