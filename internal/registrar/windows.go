//go:build windows

package registrar

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
	"gopkg.in/ini.v1"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

const uninstallRoot = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// Windows registers an application under the per-user uninstall key and
// adds Desktop and Start Menu shortcuts.
type Windows struct {
	base
	desktopDir   string
	startMenuDir string
}

func newWindows(app App, o options) (Registrar, error) {
	desktop := o.desktopDir
	if desktop == "" {
		desktop = paths.DesktopDir()
	}
	startMenu := o.startMenuDir
	if startMenu == "" {
		startMenu = filepath.Join(os.Getenv("APPDATA"), "Microsoft", "Windows", "Start Menu", "Programs", app.Name)
	}
	return &Windows{base: base{app: app}, desktopDir: desktop, startMenuDir: startMenu}, nil
}

func (w *Windows) key() string {
	return uninstallRoot + `\` + w.app.Name
}

func (w *Windows) shortcuts() []string {
	name := w.app.Name + ".url"
	return []string{
		filepath.Join(w.desktopDir, name),
		filepath.Join(w.startMenuDir, name),
	}
}

// Register writes the uninstall key and both shortcuts.
func (w *Windows) Register() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, w.key(), registry.SET_VALUE)
	if err != nil {
		return errors.Wrapf(err, "creating key %s", w.key())
	}
	defer k.Close()

	strs := [][2]string{
		{"DisplayName", w.DisplayName()},
		{"InstallLocation", w.app.InstallPath},
		{"DisplayIcon", w.IconPath()},
		{"Publisher", w.app.Publisher},
		{"UninstallString", `"` + w.LauncherPath() + `" ` + UninstallArg},
	}
	for _, kv := range strs {
		if err := k.SetStringValue(kv[0], kv[1]); err != nil {
			return errors.Wrapf(err, "setting %s", kv[0])
		}
	}
	for _, name := range []string{"NoRepair", "NoModify"} {
		if err := k.SetDWordValue(name, 1); err != nil {
			return errors.Wrapf(err, "setting %s", name)
		}
	}

	if err := paths.EnsureDir(w.startMenuDir, 0); err != nil {
		return errors.Wrapf(err, "creating %s", w.startMenuDir)
	}
	for _, path := range w.shortcuts() {
		if err := w.writeShortcut(path); err != nil {
			return err
		}
	}
	return nil
}

// writeShortcut writes an Internet Shortcut pointing at the launcher.
func (w *Windows) writeShortcut(path string) error {
	target := url.URL{Scheme: "file", Path: "/" + filepath.ToSlash(w.LauncherPath())}

	f := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	sec, err := f.NewSection("InternetShortcut")
	if err != nil {
		return errors.Wrap(err, "creating shortcut section")
	}
	keys := [][2]string{
		{"URL", target.String()},
		{"WorkingDirectory", w.app.InstallPath},
		{"IconFile", w.IconPath()},
		{"IconIndex", "0"},
	}
	for _, kv := range keys {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return errors.Wrapf(err, "setting %s", kv[0])
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "encoding shortcut")
	}
	return errors.Wrapf(fileutil.AtomicWriteFile(path, buf.Bytes(), 0o644), "writing %s", path)
}

// Unregister deletes the key and the shortcuts, skipping whatever is gone.
func (w *Windows) Unregister() error {
	var errs error
	if err := registry.DeleteKey(registry.CURRENT_USER, w.key()); err != nil && !errors.Is(err, registry.ErrNotExist) {
		errs = errors.CombineErrors(errs, errors.Wrapf(err, "deleting key %s", w.key()))
	}
	for _, path := range w.shortcuts() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "removing %s", path))
		}
	}
	if err := os.Remove(w.startMenuDir); err != nil && !os.IsNotExist(err) {
		errs = errors.CombineErrors(errs, errors.Wrapf(err, "removing %s", w.startMenuDir))
	}
	return errs
}

// IsRegistered reports whether the uninstall key opens.
func (w *Windows) IsRegistered() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, w.key(), registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	k.Close()
	return true
}
