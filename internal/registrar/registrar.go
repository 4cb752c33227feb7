// Package registrar registers an installed application with the host so
// users can find, launch, and uninstall it.
//
// Three registrars exist: [Desktop] writes freedesktop.org desktop entries,
// [Windows] writes the per-user uninstall key and shortcuts, and [Receipt]
// writes a YAML receipt for hosts without a shell integration. [New] picks
// one by kind.
package registrar

import (
	"path/filepath"
	"runtime"

	"github.com/thoreinstein/quail/internal/errors"
)

// UninstallArg is the argument the launcher receives from uninstall entries.
const UninstallArg = "--quail_uninstall"

// Registrar kinds accepted by New.
const (
	KindAuto    = "auto"
	KindDesktop = "desktop"
	KindWindows = "windows"
	KindReceipt = "receipt"
)

var (
	// ErrUnknownRegistrar indicates a kind New does not know.
	ErrUnknownRegistrar = errors.New("unknown registrar")

	// ErrUnsupported indicates a registrar that cannot run on this OS.
	ErrUnsupported = errors.New("registrar not supported on this platform")
)

// Registrar owns the host-level registration of one application.
type Registrar interface {
	// Name is the application name.
	Name() string

	// Register creates or overwrites the host registration.
	Register() error

	// Unregister removes the host registration. Absent entries are not an error.
	Unregister() error

	// IsRegistered reports whether the host registration exists.
	IsRegistered() bool

	InstallPath() string
	BinaryPath() string
	IconPath() string
	LauncherPath() string
	DisplayName() string
	Publisher() string
	Console() bool
}

// App is the fixed description of an installed application.
type App struct {
	// Name identifies the application and names its registration entries.
	Name string
	// InstallPath is the absolute payload directory.
	InstallPath string
	// Binary and Icon are relative to InstallPath.
	Binary string
	Icon   string
	// Launcher is the file name of the maintenance launcher copied into
	// InstallPath. Empty means entries start Binary directly.
	Launcher  string
	Publisher string
	Console   bool
}

// NewApp returns an App with paths cleaned. Publisher defaults to "Quail".
func NewApp(name, installPath, binary, icon, launcher, publisher string, console bool) App {
	if publisher == "" {
		publisher = "Quail"
	}
	if launcher != "" {
		launcher = filepath.Base(launcher)
	}
	return App{
		Name:        name,
		InstallPath: filepath.Clean(installPath),
		Binary:      filepath.FromSlash(binary),
		Icon:        filepath.FromSlash(icon),
		Launcher:    launcher,
		Publisher:   publisher,
		Console:     console,
	}
}

// base implements the Registrar accessors from an App.
type base struct {
	app App
}

func (b base) Name() string        { return b.app.Name }
func (b base) InstallPath() string { return b.app.InstallPath }
func (b base) DisplayName() string { return b.app.Name }
func (b base) Publisher() string   { return b.app.Publisher }
func (b base) Console() bool       { return b.app.Console }

func (b base) BinaryPath() string {
	return filepath.Join(b.app.InstallPath, b.app.Binary)
}

func (b base) IconPath() string {
	if b.app.Icon == "" {
		return ""
	}
	return filepath.Join(b.app.InstallPath, b.app.Icon)
}

// LauncherPath is what entries execute: the launcher copy when there is
// one, otherwise the binary.
func (b base) LauncherPath() string {
	if b.app.Launcher == "" {
		return b.BinaryPath()
	}
	return filepath.Join(b.app.InstallPath, b.app.Launcher)
}

// Option configures New.
type Option func(*options)

type options struct {
	applicationsDir string
	receiptsDir     string
	desktopDir      string
	startMenuDir    string
}

// WithApplicationsDir overrides where desktop entries are written.
func WithApplicationsDir(dir string) Option {
	return func(o *options) { o.applicationsDir = dir }
}

// WithReceiptsDir overrides where receipts are written.
func WithReceiptsDir(dir string) Option {
	return func(o *options) { o.receiptsDir = dir }
}

// WithShortcutDirs overrides the Windows desktop and Start Menu folders.
func WithShortcutDirs(desktop, startMenu string) Option {
	return func(o *options) {
		o.desktopDir = desktop
		o.startMenuDir = startMenu
	}
}

// New returns the registrar of the given kind for app. KindAuto picks the
// host's native registrar and falls back to a receipt.
func New(kind string, app App, opts ...Option) (Registrar, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if kind == "" || kind == KindAuto {
		kind = autoKind(runtime.GOOS)
	}

	switch kind {
	case KindDesktop:
		return NewDesktop(app, o.applicationsDir), nil
	case KindWindows:
		return newWindows(app, o)
	case KindReceipt:
		return NewReceipt(app, o.receiptsDir), nil
	default:
		return nil, errors.Wrapf(ErrUnknownRegistrar, "%q", kind)
	}
}

func autoKind(goos string) string {
	switch goos {
	case "windows":
		return KindWindows
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return KindDesktop
	default:
		return KindReceipt
	}
}
