// Package commands implements the CLI commands for quail.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/cmd"
	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// uninstallRequest is set by the reserved --quail_uninstall argument that
// host registrations pass.
var uninstallRequest bool

// removePath is set by the reserved --quail_rm argument of a hand-off copy.
var removePath string

// loadedConfig and configLoadErr hold the outcome of config loading.
// loadedConfig may be set alongside a validation error.
var (
	loadedConfig  *config.Config
	configLoadErr error
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write JSON logs to a rotated file")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default: quail.yaml next to the executable)")

	rootCmd.Flags().BoolVar(&uninstallRequest, "quail_uninstall", false, "uninstall the application")
	rootCmd.Flags().StringVar(&removePath, "quail_rm", "", "remove a path after uninstall hand-off")
	_ = rootCmd.Flags().MarkHidden("quail_uninstall")
	_ = rootCmd.Flags().MarkHidden("quail_rm")

	rootCmd.Version = cmd.Info()
	rootCmd.SetVersionTemplate("quail version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "quail [-- args...]",
	Short: "Install, update, and launch a packaged application",
	Long: `quail installs one application described by quail.yaml, keeps it
up to date, and launches it.

Run without a subcommand, quail behaves as the application's launcher:
it installs the application if needed, applies an available update, and
then replaces itself with the application binary. Arguments after --
are passed through.`,
	Example: `  # Launch, installing or updating first
  quail -- --open file.txt

  # Install only the payload, register later
  quail install --phase solution
  quail install --phase register

  # Check the installation
  quail status

  See Also: quail install, quail status, quail uninstall`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	RunE: runLauncher,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("QUAIL_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat), "Use --log-format text or json")
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
		File:   logFile,
	})
	slog.SetDefault(logger)
	logging.ConfigureColor(cmd.OutOrStdout())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// runLauncher is the default command: handle reserved arguments, then
// install or update as needed and hand over to the application.
func runLauncher(cmd *cobra.Command, args []string) error {
	if removePath != "" {
		return runRemove(cmd)
	}
	if uninstallRequest {
		return runUninstall(cmd, nil)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !a.mgr.IsInstalled() {
		a.logger.Info("installing", "name", a.cfg.Name, "path", a.installPath)
		if err := a.mgr.Install(ctx); err != nil {
			return err
		}
	} else {
		available, err := a.mgr.UpdateAvailable(ctx)
		switch {
		case err != nil:
			// The installed copy still runs when the source is unreachable.
			a.logger.Warn("update check failed", "error", err)
		case available:
			if err := a.mgr.Update(ctx); err != nil {
				return err
			}
		}
	}

	return a.mgr.Run(args)
}

// Execute runs the root command. Interrupts cancel in-flight downloads.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// PrintError writes err for the user. With -vv and above the full chain
// and stack are printed.
func PrintError(w io.Writer, err error) {
	if verbosity >= 2 {
		fmt.Fprintf(w, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
