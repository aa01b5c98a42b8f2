// internal/state/mock.go
package state

import (
	"sync"

	"github.com/llehouerou/shelf/internal/library"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu     sync.Mutex
	index  *library.Index
	config *Config
	dir    string
	closed bool

	// Errors returned by the next calls, when set.
	PutIndexErr  error
	GetIndexErr  error
	PutConfigErr error
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

// NewMockIn creates a mock whose Dir is dir.
func NewMockIn(dir string) *Mock {
	return &Mock{dir: dir}
}

func (m *Mock) PutIndex(idx *library.Index) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutIndexErr != nil {
		return m.PutIndexErr
	}
	m.index = idx
	return nil
}

func (m *Mock) GetIndex() (*library.Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetIndexErr != nil {
		return nil, m.GetIndexErr
	}
	return m.index, nil
}

func (m *Mock) DeleteIndex() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.index = nil
	return nil
}

func (m *Mock) GetConfig() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.config == nil {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	cfg := *m.config
	return &cfg, nil
}

func (m *Mock) PutConfig(cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutConfigErr != nil {
		return m.PutConfigErr
	}
	m.config = &cfg
	return nil
}

func (m *Mock) Dir() string {
	return m.dir
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
