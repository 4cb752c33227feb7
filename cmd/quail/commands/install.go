package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/errors"
)

// Install phases accepted by --phase.
const (
	phaseAll      = "all"
	phaseSolution = "solution"
	phaseRegister = "register"
)

var installPhase string

func init() {
	installCmd.Flags().StringVar(&installPhase, "phase", phaseAll,
		"phase to run: all, solution, register")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the application",
	Long: `Install the application's payload and register it with the host.

Installation has two phases that can be run separately:
  solution   copy the payload and record its version
  register   create host entries and make the binary executable

Re-running a phase is safe. A failed phase can be retried on its own.`,
	Example: `  quail install
  quail install --phase solution
  quail install --phase register`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch installPhase {
	case phaseAll, "":
		err = a.mgr.Install(ctx)
	case phaseSolution:
		err = a.mgr.InstallSolution(ctx)
	case phaseRegister:
		err = a.mgr.InstallRegister()
	default:
		return errors.NewUserError(errors.Newf("unknown phase %q", installPhase),
			"Use --phase all, solution, or register")
	}
	if err != nil {
		return err
	}

	version, _, err := a.mgr.InstalledVersion()
	if err != nil {
		return err
	}
	printf(cmd, "Installed %s %s to %s\n", a.cfg.Name, version, a.installPath)
	return nil
}
