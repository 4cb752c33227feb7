package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/doctor"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/manager"
)

var (
	statusJSON bool
	statusAll  bool
	statusFix  bool
)

// errStatusErrors signals a status report containing errors.
var errStatusErrors = errors.New("installation has errors")

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "show passed checks too")
	statusCmd.Flags().BoolVar(&statusFix, "fix", false, "repair fixable issues")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installation and run health checks",
	Long: `Show what is installed and check that it is healthy.

Checks the configuration, the payload and its version marker, host
registration, the binary's execute bit, install path permissions,
integrity (when enabled), and whether the source offers another version.

Exit codes:
  0 - No errors
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

// statusOutput is the --json document.
type statusOutput struct {
	Record *manager.Record `json:"record,omitempty"`
	Report *doctor.Report  `json:"report"`
	Fixes  []fixOutput     `json:"fixes,omitempty"`
}

type fixOutput struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(loadedConfig, configPathForDisplay()))

	var record *manager.Record
	// Without a usable config only the config check can run.
	if configLoadErr == nil {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		rec, err := a.mgr.Record()
		if err != nil {
			return err
		}
		record = &rec

		runner.AddCheck(doctor.NewPayloadCheck(a.sol))
		runner.AddCheck(doctor.NewRegistrationCheck(a.reg))
		runner.AddCheck(doctor.NewBinaryCheck(a.reg))
		runner.AddCheck(doctor.NewPermissionCheck(a.installPath))
		runner.AddCheck(doctor.NewIntegrityCheck(a.installPath, a.cfg.Integrity))
		runner.AddCheck(doctor.NewVersionCheck(a.mgr))
	}

	report := runner.Run(ctx)

	var fixes []fixOutput
	if statusFix {
		for _, check := range runner.Checks() {
			fixer, ok := check.(doctor.Fixer)
			if !ok || !fixer.CanFix() {
				continue
			}
			for _, r := range fixer.Fix() {
				fixes = append(fixes, fixOutput{Path: r.Path, Fixed: r.Fixed, Description: r.Description})
			}
		}
	}

	w := out(cmd)
	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(statusOutput{Record: record, Report: report, Fixes: fixes}); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
	} else if !quiet {
		writeStatusText(w, record, report, fixes)
	}

	if report.HasErrors() {
		return errors.NewExitError(errStatusErrors, errors.ExitSystem)
	}
	return nil
}

func writeStatusText(w io.Writer, record *manager.Record, report *doctor.Report, fixes []fixOutput) {
	bold := color.New(color.Bold).SprintFunc()

	if record != nil {
		version := record.InstalledVersion
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\n", bold(record.DisplayName))
		fmt.Fprintf(w, "  version:   %s\n", version)
		fmt.Fprintf(w, "  path:      %s\n", record.InstallPath)
		fmt.Fprintf(w, "  binary:    %s\n", record.BinaryPath)
		fmt.Fprintf(w, "  launcher:  %s\n", record.LauncherPath)
		fmt.Fprintf(w, "  publisher: %s\n", record.Publisher)
		fmt.Fprintln(w)
	}

	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !statusAll && !problem && result.Status != doctor.SeverityInfo {
			continue
		}
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	for _, f := range fixes {
		mark := statusIcon(doctor.SeverityPass)
		if !f.Fixed {
			mark = statusIcon(doctor.SeverityError)
		}
		fmt.Fprintf(w, "%s fix %s: %s\n", mark, f.Path, f.Description)
	}

	fmt.Fprintf(w, "\nSummary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}

func configPathForDisplay() string {
	if used := config.Used(); used != "" {
		return used
	}
	return configFile
}
