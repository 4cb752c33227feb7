// Package solution places an application payload from a content source into
// its install path and tracks the installed version.
//
// The installed version lives in a single-line marker file inside the
// install path. It is written last, after the payload, the launcher copy,
// and the optional integrity check, so a marker always describes a complete
// payload.
package solution

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/integrity"
	"github.com/thoreinstein/quail/internal/logging"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/internal/source"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// VersionFile is the version marker name inside the install path.
const VersionFile = ".quail_version"

// stagingSuffix names the sibling directory updates are built in.
const stagingSuffix = ".quail-staging"

// Progress reports payload copy progress.
type Progress struct {
	Done  int
	Total int
	// Path is the file just copied, relative to the payload root.
	Path string
}

// Manager installs, updates, and removes one payload.
type Manager struct {
	src         source.Source
	installPath string
	launcher    string
	companions  []string
	integrity   bool
	progress    func(Progress)
	logger      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLauncher copies the executable at path into the install path on
// every install and update, so later maintenance can run from there.
// Companion files, such as the config the launcher reads, are copied
// beside it and win over payload files of the same name.
func WithLauncher(path string, companions ...string) Option {
	return func(m *Manager) {
		m.launcher = path
		m.companions = companions
	}
}

// launcherFiles are the launcher executable and its companions.
type launcherFiles struct {
	exe        string
	companions []string
}

// WithIntegrity enables manifest verification after copy.
func WithIntegrity(enabled bool) Option {
	return func(m *Manager) { m.integrity = enabled }
}

// WithProgress sets a callback invoked after every copied file.
func WithProgress(fn func(Progress)) Option {
	return func(m *Manager) { m.progress = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// New returns a Manager placing src into installPath.
func New(src source.Source, installPath string, opts ...Option) *Manager {
	m := &Manager{
		src:         src,
		installPath: filepath.Clean(installPath),
		logger:      logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InstallPath returns the payload directory.
func (m *Manager) InstallPath() string {
	return m.installPath
}

// Source returns the content source.
func (m *Manager) Source() source.Source {
	return m.src
}

// IntegrityEnabled reports whether installs are verified.
func (m *Manager) IntegrityEnabled() bool {
	return m.integrity
}

func (m *Manager) markerPath() string {
	return filepath.Join(m.installPath, VersionFile)
}

// checkInstallPath refuses install paths whose removal would take the
// source directory or unrelated files with it.
func (m *Manager) checkInstallPath() error {
	if err := paths.CheckInstallPath(m.installPath); err != nil {
		return err
	}
	d, ok := m.src.(interface{ Dir() string })
	if !ok {
		return nil
	}
	dir, err := filepath.Abs(d.Dir())
	if err != nil {
		return errors.Wrapf(err, "resolving %s", d.Dir())
	}
	if paths.Overlaps(m.installPath, dir) {
		return errors.Wrapf(paths.ErrUnsafeInstallPath, "%s overlaps the source %s", m.installPath, dir)
	}
	return nil
}

// Install replaces the install path with a fresh copy of the source and
// returns the installed version. Failure to open the source is an
// *errors.AccessError; failed verification is an *errors.IntegrityError.
func (m *Manager) Install(ctx context.Context) (string, error) {
	if err := m.checkInstallPath(); err != nil {
		return "", err
	}
	snap, err := m.open(ctx)
	if err != nil {
		return "", err
	}
	defer closeSnapshot(snap, m.logger)
	version := snap.Version()

	// The launcher may be running from inside the install path.
	launcher, cleanup, err := m.stageLauncher()
	if err != nil {
		return "", err
	}
	defer cleanup()

	m.logger.Debug("replacing install path", "path", m.installPath)
	if err := os.RemoveAll(m.installPath); err != nil {
		return "", errors.Wrapf(err, "removing %s", m.installPath)
	}

	if err := m.place(snap, m.installPath, launcher); err != nil {
		return "", err
	}
	closeSnapshot(snap, m.logger)
	if err := m.verify(m.installPath); err != nil {
		return "", err
	}
	return m.commit(version)
}

// Update copies the current source version into a staging directory and
// swaps it in. The previous payload and its marker stay untouched until
// the new copy is complete and verified. Host registration is not touched.
func (m *Manager) Update(ctx context.Context) (string, error) {
	if err := m.checkInstallPath(); err != nil {
		return "", err
	}
	snap, err := m.open(ctx)
	if err != nil {
		return "", err
	}
	defer closeSnapshot(snap, m.logger)
	version := snap.Version()

	staging := m.installPath + stagingSuffix
	if err := os.RemoveAll(staging); err != nil {
		return "", errors.Wrapf(err, "removing stale %s", staging)
	}
	if err := m.place(snap, staging, launcherFiles{exe: m.launcher, companions: m.companions}); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}
	closeSnapshot(snap, m.logger)
	if err := m.verify(staging); err != nil {
		_ = os.RemoveAll(staging)
		return "", err
	}

	m.logger.Debug("swapping in update", "from", staging, "to", m.installPath)
	if err := os.Remove(m.markerPath()); err != nil && !os.IsNotExist(err) {
		return "", errors.Wrap(err, "clearing version marker")
	}
	if err := os.RemoveAll(m.installPath); err != nil {
		return "", errors.Wrapf(err, "removing %s", m.installPath)
	}
	if err := os.Rename(staging, m.installPath); err != nil {
		return "", errors.Wrapf(err, "moving %s into place", staging)
	}
	return m.commit(version)
}

func (m *Manager) open(ctx context.Context) (source.Snapshot, error) {
	m.logger.Debug("opening source", "source", m.src.Name())
	snap, err := m.src.Open(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrAccess) {
			return nil, err
		}
		return nil, errors.NewAccessError(m.src.Name(), err)
	}
	if strings.TrimSpace(snap.Version()) == "" {
		closeSnapshot(snap, m.logger)
		return nil, errors.NewAccessError(m.src.Name(), errors.New("source reported an empty version"))
	}
	return snap, nil
}

// place copies the snapshot and launcher files into dir.
func (m *Manager) place(snap source.Snapshot, dir string, launcher launcherFiles) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	if err := m.copyTree(snap, dir); err != nil {
		return err
	}
	if launcher.exe == "" {
		return nil
	}
	if err := fileutil.CopyFile(launcher.exe, filepath.Join(dir, filepath.Base(launcher.exe)), 0o755); err != nil {
		return errors.Wrap(err, "copying launcher")
	}
	for _, c := range launcher.companions {
		if err := fileutil.CopyFile(c, filepath.Join(dir, filepath.Base(c)), 0o644); err != nil {
			return errors.Wrapf(err, "copying %s", filepath.Base(c))
		}
	}
	return nil
}

// verify checks dir against its shipped manifest when integrity is enabled.
func (m *Manager) verify(dir string) error {
	if !m.integrity {
		return nil
	}
	if err := integrity.Check(dir); err != nil {
		return errors.Wrapf(err, "verifying %s", m.installPath)
	}
	m.logger.Debug("payload verified", "path", dir)
	return nil
}

func (m *Manager) copyTree(snap source.Snapshot, dir string) error {
	entries, err := snap.Walk()
	if err != nil {
		return errors.Wrap(err, "walking source")
	}

	total := 0
	for _, e := range entries {
		total += len(e.Files)
	}

	done := 0
	for _, e := range entries {
		for _, d := range e.Dirs {
			if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(joinRel(e.Dir, d))), 0o755); err != nil {
				return errors.Wrapf(err, "creating directory %s", joinRel(e.Dir, d))
			}
		}
		for _, f := range e.Files {
			rel := joinRel(e.Dir, f)
			if err := copyOne(snap, rel, filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
				return err
			}
			done++
			m.logger.Log(context.Background(), logging.LevelTrace, "copied", "path", rel)
			if m.progress != nil {
				m.progress(Progress{Done: done, Total: total, Path: rel})
			}
		}
	}
	m.logger.Debug("payload copied", "files", total)
	return nil
}

func copyOne(snap source.Snapshot, rel, dst string) error {
	info, err := snap.Stat(rel)
	if err != nil {
		return errors.Wrapf(err, "stat %s", rel)
	}
	rc, err := snap.Open(rel)
	if err != nil {
		return errors.Wrapf(err, "opening %s", rel)
	}
	defer rc.Close()

	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	return errors.Wrapf(fileutil.WriteFrom(dst, rc, mode), "copying %s", rel)
}

// commit writes the version marker. It must be the last step of a placement.
func (m *Manager) commit(version string) (string, error) {
	if err := fileutil.WriteLine(m.markerPath(), version); err != nil {
		return "", errors.Wrap(err, "writing version marker")
	}
	m.logger.Info("payload installed", "path", m.installPath, "version", version)
	return version, nil
}

// stageLauncher returns launcher files that survive removal of the
// install path, and a cleanup for any temporary copies.
func (m *Manager) stageLauncher() (launcherFiles, func(), error) {
	noop := func() {}
	if m.launcher == "" {
		return launcherFiles{}, noop, nil
	}

	var tmp string
	cleanup := func() {
		if tmp != "" {
			_ = os.RemoveAll(tmp)
		}
	}
	stage := func(path string) (string, error) {
		if !paths.Within(path, m.installPath) {
			return path, nil
		}
		if tmp == "" {
			dir, err := os.MkdirTemp("", "quail-launcher-*")
			if err != nil {
				return "", errors.Wrap(err, "creating launcher staging dir")
			}
			tmp = dir
		}
		staged := filepath.Join(tmp, filepath.Base(path))
		if err := fileutil.CopyFile(path, staged, 0o755); err != nil {
			return "", errors.Wrapf(err, "staging %s", filepath.Base(path))
		}
		return staged, nil
	}

	exe, err := stage(m.launcher)
	if err != nil {
		cleanup()
		return launcherFiles{}, noop, err
	}
	files := launcherFiles{exe: exe}
	for _, c := range m.companions {
		staged, err := stage(c)
		if err != nil {
			cleanup()
			return launcherFiles{}, noop, err
		}
		files.companions = append(files.companions, staged)
	}
	return files, cleanup, nil
}

// Uninstall removes the install path. It returns errors.ErrNotInstalled
// when there is nothing to remove.
func (m *Manager) Uninstall() error {
	if !m.IsInstalled() {
		return errors.Wrapf(errors.ErrNotInstalled, "%s", m.installPath)
	}
	if err := m.checkInstallPath(); err != nil {
		return err
	}
	if err := os.RemoveAll(m.installPath); err != nil {
		return errors.Wrapf(err, "removing %s", m.installPath)
	}
	m.logger.Info("payload removed", "path", m.installPath)
	return nil
}

// IsInstalled reports whether the install path exists.
func (m *Manager) IsInstalled() bool {
	info, err := os.Stat(m.installPath)
	return err == nil && info.IsDir()
}

// InstalledVersion reads the version marker. ok is false when there is no
// recorded install.
func (m *Manager) InstalledVersion() (version string, ok bool, err error) {
	line, err := fileutil.ReadFirstLine(m.markerPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Wrap(err, "reading version marker")
	}
	if line == "" {
		return "", false, nil
	}
	return line, true, nil
}

// AvailableVersion asks the source for the version it offers.
func (m *Manager) AvailableVersion(ctx context.Context) (string, error) {
	return m.src.Version(ctx)
}

// UpdateAvailable reports whether the offered version differs from the
// installed one. Without a recorded install an update is always available.
func (m *Manager) UpdateAvailable(ctx context.Context) (bool, error) {
	installed, ok, err := m.InstalledVersion()
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	available, err := m.AvailableVersion(ctx)
	if err != nil {
		return false, err
	}
	return installed != available, nil
}

func closeSnapshot(snap source.Snapshot, logger *slog.Logger) {
	if err := snap.Close(); err != nil && !errors.Is(err, source.ErrClosed) {
		logger.Warn("closing source snapshot", "error", err)
	}
}

func joinRel(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}
