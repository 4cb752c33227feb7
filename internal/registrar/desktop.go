package registrar

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// Entries and shortcuts are written as key=value with no alignment padding.
func init() {
	ini.PrettyFormat = false
}

const desktopSection = "Desktop Entry"

// Desktop registers an application with freedesktop.org desktop entries: one
// to launch it and one to uninstall it.
type Desktop struct {
	base
	dir string
}

// NewDesktop returns a Desktop registrar writing into dir, or
// $XDG_DATA_HOME/applications when dir is empty.
func NewDesktop(app App, dir string) *Desktop {
	if dir == "" {
		dir = paths.ApplicationsDir()
	}
	return &Desktop{base: base{app: app}, dir: dir}
}

// EntryPath is the launch entry.
func (d *Desktop) EntryPath() string {
	return filepath.Join(d.dir, d.app.Name+".desktop")
}

// UninstallEntryPath is the uninstall entry.
func (d *Desktop) UninstallEntryPath() string {
	return filepath.Join(d.dir, d.app.Name+"_uninstall.desktop")
}

// Register writes both entries, replacing earlier ones.
func (d *Desktop) Register() error {
	if err := paths.EnsureDir(d.dir, 0); err != nil {
		return errors.Wrapf(err, "creating %s", d.dir)
	}

	exec := quoteExec(d.LauncherPath())
	if err := d.write(d.EntryPath(), d.app.Name, exec); err != nil {
		return err
	}
	return d.write(d.UninstallEntryPath(), "Uninstall "+d.app.Name, exec+" "+UninstallArg)
}

func (d *Desktop) write(path, name, exec string) error {
	f := ini.Empty(ini.LoadOptions{IgnoreInlineComment: true})
	sec, err := f.NewSection(desktopSection)
	if err != nil {
		return errors.Wrap(err, "creating desktop section")
	}

	keys := [][2]string{
		{"Type", "Application"},
		{"Name", name},
		{"Path", d.app.InstallPath},
		{"Exec", exec},
		{"Icon", d.IconPath()},
		{"Terminal", strconv.FormatBool(d.app.Console)},
	}
	for _, kv := range keys {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return errors.Wrapf(err, "setting %s", kv[0])
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "encoding desktop entry")
	}
	if err := fileutil.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Unregister removes both entries.
func (d *Desktop) Unregister() error {
	var errs error
	for _, path := range []string{d.EntryPath(), d.UninstallEntryPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "removing %s", path))
		}
	}
	return errs
}

// IsRegistered reports whether the launch entry exists.
func (d *Desktop) IsRegistered() bool {
	info, err := os.Stat(d.EntryPath())
	return err == nil && info.Mode().IsRegular()
}

// quoteExec quotes an Exec program path per the desktop entry spec when it
// contains characters the spec reserves.
func quoteExec(path string) string {
	if !strings.ContainsAny(path, " \t\"'\\><~|&;$*?#()`") {
		return path
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + r.Replace(path) + `"`
}
