package commands

import (
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/maintenance"
)

// handoffRequired is true where a running executable cannot delete itself.
var handoffRequired = runtime.GOOS == "windows"

// handoffOptions are appended to every Handoff. Tests use them to replace
// the executable lookup and the process start.
var handoffOptions []maintenance.Option

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the application and its host registration",
	Long: `Remove the installed payload and every host registration entry.

Uninstalling twice is not an error. When quail itself runs from inside
the install path on Windows, it copies itself to a temporary directory
and lets that copy finish the removal.`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	opts := append([]maintenance.Option{maintenance.WithLogger(a.logger)}, handoffOptions...)
	h := maintenance.NewHandoff(opts...)
	if handoffRequired && h.Needed(a.installPath) {
		// The copy removes the payload and then the registration.
		if _, err := h.Relaunch(a.installPath, handoffArgs()...); err != nil {
			return err
		}
		printf(cmd, "Removing %s from %s\n", a.cfg.Name, a.installPath)
		return nil
	}

	if err := a.mgr.Uninstall(); err != nil {
		return err
	}
	printf(cmd, "Uninstalled %s\n", a.cfg.Name)
	return nil
}

// handoffArgs points the relaunched copy at the config this process read.
func handoffArgs() []string {
	used := config.Used()
	if used == "" {
		return nil
	}
	if abs, err := filepath.Abs(used); err == nil {
		used = abs
	}
	return []string{"--config", used}
}

// runRemove finishes an uninstall handed off by runUninstall. It only
// removes the configured install path, and drops the registration after
// the payload is gone.
func runRemove(cmd *cobra.Command) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	target, err := filepath.Abs(removePath)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", removePath)
	}
	if target != a.installPath {
		return errors.NewUserError(
			errors.Newf("refusing to remove %s: the install path of %s is %s", target, a.cfg.Name, a.installPath),
			"Run: quail uninstall")
	}

	if err := maintenance.Cleanup(cmd.Context(), a.installPath,
		maintenance.WithCleanupLogger(a.logger)); err != nil {
		return err
	}
	if err := a.reg.Unregister(); err != nil {
		return errors.Wrapf(err, "unregistering %s", a.cfg.Name)
	}
	a.logger.Info("uninstalled", "name", a.cfg.Name, "path", a.installPath)
	return nil
}
