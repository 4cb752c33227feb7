package manager

import (
	"context"

	goversion "github.com/hashicorp/go-version"

	"github.com/thoreinstein/quail/internal/errors"
)

// VersionStatus compares the installed version with the source's.
type VersionStatus int

const (
	NotInstalled VersionStatus = iota
	UpToDate
	Upgrade
	Downgrade
	// Changed means the versions differ and at least one is not a
	// semantic version.
	Changed
)

func (s VersionStatus) String() string {
	switch s {
	case NotInstalled:
		return "not installed"
	case UpToDate:
		return "up to date"
	case Upgrade:
		return "upgrade available"
	case Downgrade:
		return "downgrade available"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// CompareVersions compares the installed version with the source's.
// Versions that both parse as semantic versions are ordered; otherwise any
// difference is Changed.
func (m *Manager) CompareVersions(ctx context.Context) (VersionStatus, error) {
	installed, ok, err := m.sol.InstalledVersion()
	if err != nil {
		return NotInstalled, errors.Wrap(err, "reading installed version")
	}
	if !ok {
		return NotInstalled, nil
	}
	available, err := m.sol.AvailableVersion(ctx)
	if err != nil {
		return NotInstalled, errors.Wrap(err, "reading available version")
	}
	return Compare(installed, available), nil
}

// Compare orders two version strings the way CompareVersions does.
func Compare(installed, available string) VersionStatus {
	if installed == available {
		return UpToDate
	}
	iv, ierr := goversion.NewVersion(installed)
	av, aerr := goversion.NewVersion(available)
	if ierr != nil || aerr != nil {
		return Changed
	}
	switch iv.Compare(av) {
	case -1:
		return Upgrade
	case 1:
		return Downgrade
	default:
		return UpToDate
	}
}
