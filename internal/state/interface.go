// internal/state/interface.go
package state

import (
	"github.com/llehouerou/shelf/internal/library"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	library.Store
	DeleteIndex() error
	GetConfig() (*Config, error)
	PutConfig(cfg Config) error
	Dir() string
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
