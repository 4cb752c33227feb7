package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/thoreinstein/quail/internal/errors"
)

// Local serves a payload from a directory on disk.
type Local struct {
	dir     string
	version string
}

// NewLocal returns a Local source for dir that reports version.
func NewLocal(dir, version string) *Local {
	return &Local{dir: dir, version: version}
}

// Dir returns the payload directory.
func (l *Local) Dir() string {
	return l.dir
}

// Name returns the directory path.
func (l *Local) Name() string {
	return l.dir
}

// Version returns the configured version string.
func (l *Local) Version(_ context.Context) (string, error) {
	return l.version, nil
}

// Open checks the directory is readable and returns a snapshot of it.
// The directory is read in place and never removed.
func (l *Local) Open(_ context.Context) (Snapshot, error) {
	abs, err := filepath.Abs(l.dir)
	if err != nil {
		return nil, errors.NewAccessError(l.dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.NewAccessError(l.dir, err)
	}
	if !info.IsDir() {
		return nil, errors.NewAccessError(l.dir, errors.New("not a directory"))
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, errors.NewAccessError(l.dir, err)
	}
	return newDirSnapshot(abs, l.version, ""), nil
}
