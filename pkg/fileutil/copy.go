package fileutil

import (
	"io"
	"io/fs"
	"os"

	"github.com/thoreinstein/quail/internal/errors"
)

// CopyFile copies src to dst, truncating dst if it exists. The destination
// gets the permission bits given by mode; pass 0 to reuse the source mode.
func CopyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer in.Close()

	if mode == 0 {
		info, err := in.Stat()
		if err != nil {
			return errors.Wrapf(err, "stat source file %s", src)
		}
		mode = info.Mode().Perm()
	}

	return WriteFrom(dst, in, mode)
}

// WriteFrom streams r into dst with the given permission bits.
func WriteFrom(dst string, r io.Reader, mode fs.FileMode) error {
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, "copying to %s", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", dst)
	}

	// OpenFile honours umask; apply the requested bits explicitly.
	if err := os.Chmod(dst, mode.Perm()); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", dst)
	}
	return nil
}

// IsExecutable reports whether the owner execute bit is set.
func IsExecutable(mode fs.FileMode) bool {
	return mode.Perm()&0o100 != 0
}

// EnsureExecutable sets 0755 on path when the owner execute bit is missing.
// It reports whether the mode was changed.
func EnsureExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", path)
	}
	if IsExecutable(info.Mode()) {
		return false, nil
	}
	if err := os.Chmod(path, 0o755); err != nil {
		return false, errors.Wrapf(err, "chmod %s", path)
	}
	return true, nil
}
