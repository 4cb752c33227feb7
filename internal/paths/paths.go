package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/quail/internal/errors"
)

// AppName is the directory name quail uses under XDG locations.
const AppName = "quail"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidName indicates an application name that cannot be used as a path element.
	ErrInvalidName = errors.New("invalid application name")

	// ErrUnsafeInstallPath indicates an install path whose removal would take
	// unrelated files with it.
	ErrUnsafeInstallPath = errors.New("unsafe install path")
)

// DefaultDirPerm is the permission for directories quail creates.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents.
// If perm is 0, DefaultDirPerm is used. Existing directories are left alone.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Within reports whether path is dir or lies beneath it.
func Within(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Overlaps reports whether either path contains the other.
func Overlaps(a, b string) bool {
	return Within(a, b) || Within(b, a)
}

// CheckInstallPath rejects install paths that are a filesystem root or
// that contain the home directory. Install and uninstall remove the
// install path recursively.
func CheckInstallPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	if filepath.Dir(abs) == abs {
		return errors.Wrapf(ErrUnsafeInstallPath, "%s is a filesystem root", abs)
	}
	if home, err := os.UserHomeDir(); err == nil && Within(home, abs) {
		return errors.Wrapf(ErrUnsafeInstallPath, "%s contains the home directory", abs)
	}
	return nil
}

// Reload re-reads the XDG environment variables.
func Reload() {
	xdg.Reload()
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns $XDG_CONFIG_HOME/quail.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplicationsDir returns the per-user directory for desktop entries.
func ApplicationsDir() string {
	return filepath.Join(xdg.DataHome, "applications")
}

// ReceiptsDir returns the directory holding install receipts.
func ReceiptsDir() string {
	return filepath.Join(xdg.DataHome, AppName, "receipts")
}

// DownloadsDir returns the cache directory for fetched archives.
func DownloadsDir() string {
	return filepath.Join(xdg.CacheHome, AppName, "downloads")
}

// DesktopDir returns the user's desktop folder.
func DesktopDir() string {
	return xdg.UserDirs.Desktop
}

// InstallRoot returns ~/.quail, the parent of every default install path.
func InstallRoot() (string, error) {
	home, err := ResolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+AppName), nil
}

// InstallPath returns the install path for the named application.
// When override is non-empty it is used instead of the default root; a
// leading "~" in it is expanded. The result is checked with
// CheckInstallPath.
func InstallPath(name, override string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if override != "" {
		expanded, err := ExpandHome(override)
		if err != nil {
			return "", err
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return "", errors.Wrapf(err, "resolving install dir %s", override)
		}
		if err := CheckInstallPath(abs); err != nil {
			return "", err
		}
		return abs, nil
	}
	root, err := InstallRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// ValidateName checks that name can be used as a single path element.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Wrap(ErrInvalidName, "name is empty")
	case name == "." || name == "..":
		return errors.Wrapf(ErrInvalidName, "%q", name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return errors.Wrapf(ErrInvalidName, "%q contains a path separator", name)
	}
	return nil
}
