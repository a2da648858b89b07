package fs

import (
	"fmt"
	"os"
)

// Reader lists directories on the local filesystem.
type Reader struct{}

// ReadNames returns the entry names of path in directory order, exactly as
// stored on disk.
func (Reader) ReadNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// IsDir reports whether path is a directory, following symlinks.
func (Reader) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
