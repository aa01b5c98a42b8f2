package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/shelf/internal/tags"
)

type Config struct {
	Roots      []string `koanf:"roots"`      // initial roots, used until roots are edited in the app
	Extensions []string `koanf:"extensions"` // allow-list of indexed extensions
	Workers    int      `koanf:"workers"`    // concurrent tag readers during a scan
	StateDir   string   `koanf:"state_dir"`  // directory of shelf.db and roots.json
	ExportDir  string   `koanf:"export_dir"` // default directory for exported playlists
	Player     string   `koanf:"player"`     // command run with an exported playlist path

	Log LogConfig `koanf:"log"`
}

// LogConfig selects the log level and destination.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	File  string `koanf:"file"`  // log file; empty logs to stderr, or discards in the TUI
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, root := range cfg.Roots {
		cfg.Roots[i] = expandPath(root)
	}
	cfg.StateDir = expandPath(cfg.StateDir)
	cfg.ExportDir = expandPath(cfg.ExportDir)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Player = strings.TrimSpace(cfg.Player)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/shelf/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "shelf", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetExtensions returns the configured allow-list, or the default audio
// extensions when none is set.
func (c *Config) GetExtensions() []string {
	if len(c.Extensions) == 0 {
		exts := make([]string, len(tags.DefaultExtensions))
		for i, e := range tags.DefaultExtensions {
			exts[i] = strings.TrimPrefix(e, ".")
		}
		return exts
	}
	return c.Extensions
}

// GetWorkers returns the scan concurrency, defaulting to 8.
func (c *Config) GetWorkers() int {
	if c.Workers <= 0 {
		return 8
	}
	return c.Workers
}

// DatabasePath returns the state database location, or "" for the XDG
// default.
func (c *Config) DatabasePath() string {
	if c.StateDir == "" {
		return ""
	}
	return filepath.Join(c.StateDir, "shelf.db")
}

// GetExportDir returns the export directory, defaulting to the working
// directory.
func (c *Config) GetExportDir() string {
	if c.ExportDir == "" {
		return "."
	}
	return c.ExportDir
}

// HasPlayer returns true if an external player command is configured.
func (c *Config) HasPlayer() bool {
	return c.Player != ""
}
