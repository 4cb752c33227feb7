package source

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/quail/internal/errors"
)

// ErrClosed is returned by any Snapshot method called after Close.
var ErrClosed = errors.New("snapshot closed")

// ErrInvalidPath is returned when a snapshot is asked for a path outside its root.
var ErrInvalidPath = errors.New("invalid snapshot path")

// Source offers a payload at some version.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Version returns the version the source currently offers.
	Version(ctx context.Context) (string, error)

	// Open returns a snapshot of the current payload. Failures are
	// reported as *errors.AccessError.
	Open(ctx context.Context) (Snapshot, error)
}

// Snapshot is an opened, read-only view of one payload version.
// It is single use: open, consume, close.
type Snapshot interface {
	// Version is the payload version this snapshot holds. It does not change.
	Version() string

	// Walk lists the tree in pre-order.
	Walk() ([]Entry, error)

	// Open opens a file by forward-slash path relative to the root.
	Open(rel string) (io.ReadCloser, error)

	// Stat describes a file or directory by forward-slash relative path.
	Stat(rel string) (fs.FileInfo, error)

	// Close releases the snapshot.
	Close() error
}

// Entry is one directory in a walk: its path relative to the root ("." for
// the root itself, forward slashes elsewhere) and its sorted children.
type Entry struct {
	Dir   string
	Dirs  []string
	Files []string
}

// dirSnapshot serves a snapshot from a directory on disk. When cleanup is
// set, Close removes it.
type dirSnapshot struct {
	root    string
	version string
	cleanup string
	closed  bool
}

func newDirSnapshot(root, version, cleanup string) *dirSnapshot {
	return &dirSnapshot{root: root, version: version, cleanup: cleanup}
}

func (s *dirSnapshot) Version() string {
	return s.version
}

func (s *dirSnapshot) Walk() ([]Entry, error) {
	if s.closed {
		return nil, ErrClosed
	}
	var entries []Entry
	if err := s.walk(".", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *dirSnapshot) walk(rel string, out *[]Entry) error {
	children, err := os.ReadDir(s.path(rel))
	if err != nil {
		return errors.Wrapf(err, "reading %s", rel)
	}

	entry := Entry{Dir: rel}
	for _, child := range children {
		// Stat follows symlinks so a linked directory is walked as one.
		info, err := os.Stat(filepath.Join(s.path(rel), child.Name()))
		if err != nil {
			return errors.Wrapf(err, "stat %s", join(rel, child.Name()))
		}
		if info.IsDir() {
			entry.Dirs = append(entry.Dirs, child.Name())
		} else {
			entry.Files = append(entry.Files, child.Name())
		}
	}
	*out = append(*out, entry)

	for _, dir := range entry.Dirs {
		if err := s.walk(join(rel, dir), out); err != nil {
			return err
		}
	}
	return nil
}

func (s *dirSnapshot) Open(rel string) (io.ReadCloser, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !fs.ValidPath(rel) {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", rel)
	}
	return os.Open(s.path(rel))
}

func (s *dirSnapshot) Stat(rel string) (fs.FileInfo, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if !fs.ValidPath(rel) {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", rel)
	}
	return os.Stat(s.path(rel))
}

func (s *dirSnapshot) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.cleanup != "" {
		return errors.Wrap(os.RemoveAll(s.cleanup), "removing snapshot")
	}
	return nil
}

func (s *dirSnapshot) path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// join builds a forward-slash relative path, treating "." as the root.
func join(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
