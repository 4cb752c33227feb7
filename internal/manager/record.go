package manager

import (
	"github.com/thoreinstein/quail/internal/errors"
)

// Record describes an installation as the host sees it.
type Record struct {
	Name             string `json:"name" yaml:"name"`
	InstallPath      string `json:"install_path" yaml:"install_path"`
	InstalledVersion string `json:"installed_version,omitempty" yaml:"installed_version,omitempty"`
	BinaryPath       string `json:"binary_path" yaml:"binary_path"`
	IconPath         string `json:"icon_path,omitempty" yaml:"icon_path,omitempty"`
	LauncherPath     string `json:"launcher_path" yaml:"launcher_path"`
	DisplayName      string `json:"display_name" yaml:"display_name"`
	Publisher        string `json:"publisher" yaml:"publisher"`
	Console          bool   `json:"console" yaml:"console"`
	Installed        bool   `json:"installed" yaml:"installed"`
	Registered       bool   `json:"registered" yaml:"registered"`
}

// Record collects the registrar's view and the recorded version.
func (m *Manager) Record() (Record, error) {
	version, installed, err := m.sol.InstalledVersion()
	if err != nil {
		return Record{}, errors.Wrap(err, "reading installed version")
	}
	return Record{
		Name:             m.reg.Name(),
		InstallPath:      m.reg.InstallPath(),
		InstalledVersion: version,
		BinaryPath:       m.reg.BinaryPath(),
		IconPath:         m.reg.IconPath(),
		LauncherPath:     m.reg.LauncherPath(),
		DisplayName:      m.reg.DisplayName(),
		Publisher:        m.reg.Publisher(),
		Console:          m.reg.Console(),
		Installed:        installed,
		Registered:       m.reg.IsRegistered(),
	}, nil
}
