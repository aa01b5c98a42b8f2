package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const sidecarName = "roots.json"

// SidecarPath returns the roots.json location inside dir.
func SidecarPath(dir string) string {
	return filepath.Join(dir, sidecarName)
}

// ReadRoots reads the tracked roots from the sidecar at path. A missing file
// yields no roots and no error.
func ReadRoots(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioError("read", sidecarName, err)
	}

	var roots []string
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, corruptError("read", sidecarName, err)
	}
	return roots, nil
}

// WriteRoots replaces the sidecar at path. The file is written next to its
// destination and renamed, so readers see either the old or the new list.
func WriteRoots(path string, roots []string) error {
	if roots == nil {
		roots = []string{}
	}
	data, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return ioError("write", sidecarName, err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		return ioError("write", sidecarName, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
