package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/errors"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Launch the installed application without checking for updates",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if !a.mgr.IsInstalled() {
			return errors.NewUserError(errors.ErrNotInstalled, "Run: quail install")
		}
		return a.mgr.Run(args)
	},
}
