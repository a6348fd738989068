package sources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound reports that a source file does not exist yet. This is an
// expected steady state, not a failure.
var ErrNotFound = errors.New("source file not found")

// FileStore resolves a logical file name to its current bytes and
// last-modified timestamp.
type FileStore interface {
	Read(name string) ([]byte, time.Time, error)
}

// DirStore reads source files from a single directory.
type DirStore struct {
	dir      string
	maxBytes int
}

func NewDirStore(dir string, maxBytes int) *DirStore {
	return &DirStore{dir: dir, maxBytes: maxBytes}
}

func (s *DirStore) Read(name string) ([]byte, time.Time, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, time.Time{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	if s.maxBytes > 0 && info.Size() > int64(s.maxBytes) {
		return nil, time.Time{}, fmt.Errorf("%s: file too large: %d bytes (limit %d)", name, info.Size(), s.maxBytes)
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return blob, info.ModTime(), nil
}
