package registrar

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// ReceiptData is the content of a receipt file.
type ReceiptData struct {
	Name         string    `yaml:"name"`
	InstallPath  string    `yaml:"install_path"`
	BinaryPath   string    `yaml:"binary_path"`
	IconPath     string    `yaml:"icon_path,omitempty"`
	LauncherPath string    `yaml:"launcher_path"`
	UninstallCmd string    `yaml:"uninstall_command"`
	Publisher    string    `yaml:"publisher"`
	Console      bool      `yaml:"console"`
	RegisteredAt time.Time `yaml:"registered_at"`
}

// Receipt registers an application by writing a YAML receipt. It serves
// hosts without a desktop shell (servers, containers, CI).
type Receipt struct {
	base
	dir string
	now func() time.Time
}

// NewReceipt returns a Receipt registrar writing into dir, or
// $XDG_DATA_HOME/quail/receipts when dir is empty.
func NewReceipt(app App, dir string) *Receipt {
	if dir == "" {
		dir = paths.ReceiptsDir()
	}
	return &Receipt{base: base{app: app}, dir: dir, now: time.Now}
}

// Path is the receipt file.
func (r *Receipt) Path() string {
	return filepath.Join(r.dir, r.app.Name+".yaml")
}

// Register writes the receipt, replacing an earlier one.
func (r *Receipt) Register() error {
	if err := paths.EnsureDir(r.dir, 0); err != nil {
		return errors.Wrapf(err, "creating %s", r.dir)
	}
	data := ReceiptData{
		Name:         r.app.Name,
		InstallPath:  r.app.InstallPath,
		BinaryPath:   r.BinaryPath(),
		IconPath:     r.IconPath(),
		LauncherPath: r.LauncherPath(),
		UninstallCmd: r.LauncherPath() + " " + UninstallArg,
		Publisher:    r.app.Publisher,
		Console:      r.app.Console,
		RegisteredAt: r.now().UTC().Truncate(time.Second),
	}
	return errors.Wrap(fileutil.AtomicWriteYAML(r.Path(), data), "writing receipt")
}

// Unregister removes the receipt.
func (r *Receipt) Unregister() error {
	if err := os.Remove(r.Path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing receipt")
	}
	return nil
}

// IsRegistered reports whether the receipt exists.
func (r *Receipt) IsRegistered() bool {
	_, err := os.Stat(r.Path())
	return err == nil
}

// Read loads the receipt.
func (r *Receipt) Read() (*ReceiptData, error) {
	raw, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "receipt %s", r.Path())
		}
		return nil, errors.Wrap(err, "reading receipt")
	}
	var data ReceiptData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, errors.Wrap(err, "parsing receipt")
	}
	return &data, nil
}
