package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/doctor"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/integrity"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check installed files against the integrity manifest",
	Long: `Hash every file listed in ` + integrity.ManifestName + ` and report
the ones that are missing or changed.

With no argument the configured install path is verified, whether or
not integrity checking is enabled in quail.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		dir = a.installPath
	}

	manifest, err := integrity.Load(filepath.Join(dir, integrity.ManifestName))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.NewUserError(err, "Generate one with: quail manifest <payload dir>")
		}
		return err
	}
	offenders, err := integrity.Verify(dir, manifest)
	if err != nil {
		return err
	}
	if len(offenders) > 0 {
		for _, rel := range offenders {
			printf(cmd, "%s %s\n", statusIcon(doctor.SeverityError), rel)
		}
		return errors.NewIntegrityError(offenders)
	}
	printf(cmd, "%d files verified in %s\n", len(manifest), dir)
	return nil
}
