package doctor

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/integrity"
	"github.com/thoreinstein/quail/internal/manager"
	"github.com/thoreinstein/quail/internal/registrar"
	"github.com/thoreinstein/quail/internal/solution"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over cfg, loaded from path.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

func (c *ConfigCheck) Run(context.Context) *CheckResult {
	details := map[string]any{"path": c.path}
	if c.cfg == nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "no configuration loaded",
			Details:  details,
			FixHint:  "create quail.yaml next to the executable",
		}
	}
	errs := config.Validate(c.cfg)
	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		details["errors"] = msgs
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d configuration error(s)", len(errs)),
			Details:  details,
			FixHint:  "fix the listed fields in " + displayPath(c.path),
		}
	}
	details["source"] = c.cfg.Source.Type
	details["registrar"] = c.cfg.Registrar
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "configuration is valid",
		Details:  details,
	}
}

// PayloadCheck reports whether the payload is in place with a recorded
// version.
type PayloadCheck struct {
	sol *solution.Manager
}

var _ Check = (*PayloadCheck)(nil)

func NewPayloadCheck(sol *solution.Manager) *PayloadCheck {
	return &PayloadCheck{sol: sol}
}

func (c *PayloadCheck) Name() string     { return "payload" }
func (c *PayloadCheck) Category() string { return "payload" }

func (c *PayloadCheck) Run(context.Context) *CheckResult {
	details := map[string]any{"install_path": c.sol.InstallPath()}
	if !c.sol.IsInstalled() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "not installed",
			Details:  details,
			FixHint:  "quail install",
		}
	}
	version, ok, err := c.sol.InstalledVersion()
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot read version marker: %v", err),
			Details:  details,
		}
	}
	if !ok {
		// The marker is written last, so a payload without one was interrupted.
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "payload present but no version recorded",
			Details:  details,
			FixHint:  "quail install --phase solution",
		}
	}
	details["version"] = version
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "version " + version + " installed",
		Details:  details,
	}
}

// RegistrationCheck reports whether the host knows about the application.
type RegistrationCheck struct {
	reg registrar.Registrar
}

var _ Check = (*RegistrationCheck)(nil)

func NewRegistrationCheck(reg registrar.Registrar) *RegistrationCheck {
	return &RegistrationCheck{reg: reg}
}

func (c *RegistrationCheck) Name() string     { return "registration" }
func (c *RegistrationCheck) Category() string { return "host" }

func (c *RegistrationCheck) Run(context.Context) *CheckResult {
	details := map[string]any{
		"name":     c.reg.DisplayName(),
		"launcher": c.reg.LauncherPath(),
	}
	if !c.reg.IsRegistered() {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "not registered with the host",
			Details:  details,
			FixHint:  "quail install --phase register",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "registered",
		Details:  details,
	}
}

// BinaryCheck verifies the application binary exists and is executable.
// A missing execute bit can be fixed.
type BinaryCheck struct {
	reg   registrar.Registrar
	fixer *PermissionFixer
}

var (
	_ Check = (*BinaryCheck)(nil)
	_ Fixer = (*BinaryCheck)(nil)
)

func NewBinaryCheck(reg registrar.Registrar) *BinaryCheck {
	return &BinaryCheck{reg: reg, fixer: &PermissionFixer{}}
}

func (c *BinaryCheck) Name() string     { return "binary" }
func (c *BinaryCheck) Category() string { return "payload" }

func (c *BinaryCheck) Run(context.Context) *CheckResult {
	path := c.reg.BinaryPath()
	details := map[string]any{"path": path}
	c.fixer.setIssues(nil)

	info, err := os.Stat(path)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  "binary missing",
			Details:  details,
			FixHint:  "quail install",
		}
	}
	details["permissions"] = formatPermissions(info.Mode())
	if runtime.GOOS != "windows" && !fileutil.IsExecutable(info.Mode()) {
		c.fixer.setIssues([]pathIssue{{
			Path:    path,
			Type:    "binary",
			Problem: "not executable",
			Fixable: true,
		}})
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "binary is not executable",
			Details:  details,
			Fixable:  true,
			FixHint:  "chmod 755 " + path,
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "binary is executable",
		Details:  details,
	}
}

func (c *BinaryCheck) CanFix() bool     { return c.fixer.CanFix() }
func (c *BinaryCheck) Fix() []FixResult { return c.fixer.Fix() }

// PermissionCheck flags an install path other users can write to.
type PermissionCheck struct {
	installPath string
	fixer       *PermissionFixer
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

func NewPermissionCheck(installPath string) *PermissionCheck {
	return &PermissionCheck{installPath: installPath, fixer: &PermissionFixer{}}
}

func (c *PermissionCheck) Name() string     { return "install-permissions" }
func (c *PermissionCheck) Category() string { return "filesystem" }

func (c *PermissionCheck) Run(context.Context) *CheckResult {
	details := map[string]any{"path": c.installPath}
	c.fixer.setIssues(nil)

	info, err := os.Stat(c.installPath)
	if os.IsNotExist(err) {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "install path does not exist",
			Details:  details,
		}
	}
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("cannot stat install path: %v", err),
			Details:  details,
		}
	}
	details["permissions"] = formatPermissions(info.Mode())
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		c.fixer.setIssues([]pathIssue{{
			Path:    c.installPath,
			Type:    "directory",
			Problem: "world-writable",
			Fixable: true,
		}})
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "install path is world-writable",
			Details:  details,
			Fixable:  true,
			FixHint:  "chmod 755 " + c.installPath,
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityPass,
		Message:  "install path permissions ok",
		Details:  details,
	}
}

func (c *PermissionCheck) CanFix() bool     { return c.fixer.CanFix() }
func (c *PermissionCheck) Fix() []FixResult { return c.fixer.Fix() }

// IntegrityCheck verifies the installed payload against its manifest.
type IntegrityCheck struct {
	installPath string
	enabled     bool
}

var _ Check = (*IntegrityCheck)(nil)

func NewIntegrityCheck(installPath string, enabled bool) *IntegrityCheck {
	return &IntegrityCheck{installPath: installPath, enabled: enabled}
}

func (c *IntegrityCheck) Name() string     { return "integrity" }
func (c *IntegrityCheck) Category() string { return "payload" }

func (c *IntegrityCheck) Run(context.Context) *CheckResult {
	details := map[string]any{"manifest": integrity.ManifestName}
	if !c.enabled {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "integrity checking disabled",
			Details:  details,
		}
	}
	if _, err := os.Stat(c.installPath); err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "nothing installed to verify",
			Details:  details,
		}
	}
	err := integrity.Check(c.installPath)
	if err == nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "all files match the manifest",
			Details:  details,
		}
	}
	var ierr *errors.IntegrityError
	if errors.As(err, &ierr) {
		details["files"] = ierr.Files
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d file(s) failed verification", len(ierr.Files)),
			Details:  details,
			FixHint:  "quail update or reinstall with quail install",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityError,
		Message:  err.Error(),
		Details:  details,
	}
}

// VersionCheck compares the installed version with the source's.
type VersionCheck struct {
	mgr *manager.Manager
}

var _ Check = (*VersionCheck)(nil)

func NewVersionCheck(mgr *manager.Manager) *VersionCheck {
	return &VersionCheck{mgr: mgr}
}

func (c *VersionCheck) Name() string     { return "version" }
func (c *VersionCheck) Category() string { return "source" }

func (c *VersionCheck) Run(ctx context.Context) *CheckResult {
	details := map[string]any{"source": c.mgr.Solution().Source().Name()}

	status, err := c.mgr.CompareVersions(ctx)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("version check failed: %v", err),
			Details:  details,
		}
	}
	details["status"] = status.String()

	installed, ok, err := c.mgr.InstalledVersion()
	if err == nil && ok {
		details["installed"] = installed
	}

	switch status {
	case manager.NotInstalled:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityInfo,
			Message:  "not installed",
			Details:  details,
			FixHint:  "quail install",
		}
	case manager.UpToDate:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "up to date at " + installed,
			Details:  details,
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Message:  fmt.Sprintf("%s (installed %s)", status, installed),
		Details:  details,
		FixHint:  "quail update",
	}
}

// pathIssue is a single fixable path problem.
type pathIssue struct {
	Path    string
	Type    string // "binary" or "directory"
	Problem string
	Fixable bool
}

func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

func displayPath(path string) string {
	if path == "" {
		return "quail.yaml"
	}
	return path
}
