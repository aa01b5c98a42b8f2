// Package state persists the library index and user preferences in a
// SQLite key-value table, plus the roots.json sidecar read before the
// database is opened.
package state

import (
	"database/sql"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "shelf"
	dbFileName = "shelf.db"
)

// Manager owns the state database.
type Manager struct {
	db   *sql.DB
	path string
}

// DefaultPath returns the database location under the XDG data directory,
// creating its parent directory.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens or creates the database at path. An empty path selects
// DefaultPath.
func Open(path string) (*Manager, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, ioError("open", "", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ioError("open", "", err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, ioError("open", "", err)
	}
	// One connection keeps the pragmas and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, ioError("open", "", err)
	}

	return &Manager{db: db, path: path}, nil
}

// dsn enables WAL and full fsync so a committed write survives a crash.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "synchronous(FULL)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}

// Path returns the database file location.
func (m *Manager) Path() string {
	return m.path
}

// Dir returns the directory holding the database and its sidecar.
func (m *Manager) Dir() string {
	return filepath.Dir(m.path)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) Close() error {
	return m.db.Close()
}
