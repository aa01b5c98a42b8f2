package state

import (
	"github.com/llehouerou/shelf/internal/library"
)

// PutIndex replaces the stored index. It returns once the write is durable;
// on failure the previously stored index is left untouched.
func (m *Manager) PutIndex(idx *library.Index) error {
	blob, err := encodeIndex(idx)
	if err != nil {
		return ioError("put", keyIndex, err)
	}
	if err := put(m.db, keyIndex, blob); err != nil {
		return ioError("put", keyIndex, err)
	}
	return nil
}

// GetIndex returns the stored index, or (nil, nil) when none was stored.
// Undecodable blobs and blobs of another schema version match ErrCorrupt.
func (m *Manager) GetIndex() (*library.Index, error) {
	blob, err := get(m.db, keyIndex)
	if err != nil {
		return nil, ioError("get", keyIndex, err)
	}
	if blob == nil {
		return nil, nil //nolint:nilnil // no stored index is valid on first run
	}
	idx, err := decodeIndex(blob)
	if err != nil {
		return nil, corruptError("get", keyIndex, err)
	}
	return idx, nil
}

// DeleteIndex removes the stored index.
func (m *Manager) DeleteIndex() error {
	if err := del(m.db, keyIndex); err != nil {
		return ioError("delete", keyIndex, err)
	}
	return nil
}
