package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/errors"
)

var (
	updateForce      bool
	updateReregister bool
)

func init() {
	updateCmd.Flags().BoolVar(&updateForce, "force", false,
		"reinstall even when the version has not changed")
	updateCmd.Flags().BoolVar(&updateReregister, "reregister", false,
		"also refresh the host registration")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the installed payload",
	Long: `Replace the installed payload with the version the source offers.

The new payload is staged next to the install path and swapped in only
after it is complete, so a failed update leaves the previous version in
place. Host registration is not touched unless --reregister is given.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.sol.IsInstalled() {
		return errors.NewUserError(errors.ErrNotInstalled, "Run: quail install")
	}

	if !updateForce {
		available, err := a.mgr.UpdateAvailable(ctx)
		if err != nil {
			return err
		}
		if !available {
			version, _, _ := a.mgr.InstalledVersion()
			printf(cmd, "%s %s is up to date\n", a.cfg.Name, version)
			return nil
		}
	}

	if err := a.mgr.Update(ctx); err != nil {
		return err
	}
	if updateReregister {
		if err := a.mgr.InstallRegister(); err != nil {
			return err
		}
	}

	version, _, err := a.mgr.InstalledVersion()
	if err != nil {
		return err
	}
	printf(cmd, "Updated %s to %s\n", a.cfg.Name, version)
	return nil
}
