package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/integrity"
)

var manifestOutput string

func init() {
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "",
		"manifest path (default: <dir>/"+integrity.ManifestName+")")
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest <dir>",
	Short: "Write an integrity manifest for a payload directory",
	Long: `Hash every file under dir and write ` + integrity.ManifestName + `.

Ship the manifest inside the payload and set integrity: true in
quail.yaml to have installs verified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		m, err := integrity.Build(dir)
		if err != nil {
			return err
		}
		path := manifestOutput
		if path == "" {
			path = filepath.Join(dir, integrity.ManifestName)
		}
		if err := integrity.Save(path, m); err != nil {
			return err
		}
		printf(cmd, "Wrote %d entries to %s\n", len(m), path)
		return nil
	},
}
