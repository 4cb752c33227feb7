// Package maintenance removes an install path that contains the running
// executable.
//
// A process cannot delete its own image on every platform, so uninstall
// runs in two steps. [Handoff.Relaunch] copies the executable to a temp
// directory and starts the copy with RemoveArg and the install path; the
// caller then exits. The copy calls [Cleanup], which retries until the
// parent has released its files, and only then drops the host
// registration. The temp copy is left for the host to reclaim.
package maintenance

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/logging"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/internal/solution"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// RemoveArg asks a relaunched copy to remove the path that follows it.
const RemoveArg = "--quail_rm"

const (
	defaultRetries  = 10
	defaultInterval = 500 * time.Millisecond
)

// StartFunc starts name with args without waiting for it.
type StartFunc func(name string, args ...string) error

// Handoff relaunches the executable from outside the install path.
type Handoff struct {
	logger     *slog.Logger
	tempDir    string
	start      StartFunc
	executable func() (string, error)
}

// Option configures a Handoff.
type Option func(*Handoff)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handoff) { h.logger = l }
}

// WithTempDir sets the directory the executable is copied into.
func WithTempDir(dir string) Option {
	return func(h *Handoff) { h.tempDir = dir }
}

// WithStart replaces the function that starts the copy.
func WithStart(fn StartFunc) Option {
	return func(h *Handoff) { h.start = fn }
}

// WithExecutable replaces os.Executable.
func WithExecutable(fn func() (string, error)) Option {
	return func(h *Handoff) { h.executable = fn }
}

// NewHandoff returns a Handoff.
func NewHandoff(opts ...Option) *Handoff {
	h := &Handoff{
		logger:     logging.NewDiscard(),
		start:      startDetached,
		executable: os.Executable,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Needed reports whether the running executable lives under installPath.
func (h *Handoff) Needed(installPath string) bool {
	exe, err := h.executable()
	if err != nil {
		return false
	}
	return paths.Within(exe, installPath)
}

// Relaunch copies the executable out of installPath and starts the copy
// with RemoveArg, the install path, and extra. The caller should exit
// once Relaunch returns nil.
func (h *Handoff) Relaunch(installPath string, extra ...string) (string, error) {
	exe, err := h.executable()
	if err != nil {
		return "", errors.Wrap(err, "locating executable")
	}
	tmp, err := os.MkdirTemp(h.tempDir, "quail-rm-*")
	if err != nil {
		return "", errors.Wrap(err, "creating hand-off directory")
	}
	copyPath := filepath.Join(tmp, filepath.Base(exe))
	if err := fileutil.CopyFile(exe, copyPath, 0o755); err != nil {
		_ = os.RemoveAll(tmp)
		return "", errors.Wrap(err, "copying executable")
	}
	args := append([]string{RemoveArg, installPath}, extra...)
	if err := h.start(copyPath, args...); err != nil {
		_ = os.RemoveAll(tmp)
		return "", errors.Wrapf(err, "starting %s", copyPath)
	}
	h.logger.Info("handed off removal", "copy", copyPath, "path", installPath)
	return copyPath, nil
}

// CleanupOption configures Cleanup.
type CleanupOption func(*cleanup)

type cleanup struct {
	retries  uint64
	interval time.Duration
	marker   string
	logger   *slog.Logger
	remove   func(string) error
}

// WithRetries bounds the removal attempts after the first.
func WithRetries(n uint64) CleanupOption {
	return func(c *cleanup) { c.retries = n }
}

// WithInterval sets the initial wait between attempts.
func WithInterval(d time.Duration) CleanupOption {
	return func(c *cleanup) { c.interval = d }
}

// WithMarker sets the file that must exist in a path before Cleanup
// removes it. It defaults to the version marker.
func WithMarker(name string) CleanupOption {
	return func(c *cleanup) { c.marker = name }
}

// WithCleanupLogger sets the logger.
func WithCleanupLogger(l *slog.Logger) CleanupOption {
	return func(c *cleanup) { c.logger = l }
}

// Cleanup removes path, retrying while files are still held open. A
// missing path is already clean. An existing path without the marker
// file is refused.
func Cleanup(ctx context.Context, path string, opts ...CleanupOption) error {
	if path == "" || filepath.Dir(path) == path {
		return errors.Newf("refusing to remove %q", path)
	}
	c := &cleanup{
		retries:  defaultRetries,
		interval: defaultInterval,
		marker:   solution.VersionFile,
		logger:   logging.NewDiscard(),
		remove:   os.RemoveAll,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if c.marker != "" {
		if _, err := os.Stat(filepath.Join(path, c.marker)); err != nil {
			return errors.Newf("refusing to remove %s: no %s inside", path, c.marker)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.interval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx)

	op := func() error {
		return c.remove(path)
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("removal failed, retrying", "path", path, "error", err, "wait", wait)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	c.logger.Info("removed", "path", path)
	return nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
