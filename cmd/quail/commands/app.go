package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/quail/internal/config"
	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/logging"
	"github.com/thoreinstein/quail/internal/manager"
	"github.com/thoreinstein/quail/internal/paths"
	"github.com/thoreinstein/quail/internal/registrar"
	"github.com/thoreinstein/quail/internal/solution"
	"github.com/thoreinstein/quail/internal/source"
)

// launcherPath locates the executable copied into the install path as the
// application's launcher. Tests replace it.
var launcherPath = os.Executable

// execFunc overrides how Run starts the application binary. Nil uses the
// platform default.
var execFunc manager.ExecFunc

// app is the object graph for one configured application.
type app struct {
	cfg         *config.Config
	installPath string
	reg         registrar.Registrar
	sol         *solution.Manager
	mgr         *manager.Manager
	logger      *slog.Logger
}

// newApp wires config into a source, registrar, and manager.
func newApp(cmd *cobra.Command) (*app, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	cfg := loadedConfig
	logger := logging.FromContext(cmd.Context())

	installPath, err := paths.InstallPath(cfg.Name, cfg.InstallDir)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	src, err := source.New(cfg.Source,
		source.WithLogger(logger),
		source.WithDownloadDir(paths.DownloadsDir()))
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	launcher, err := launcherPath()
	if err != nil {
		logger.Warn("no launcher copy", "error", err)
		launcher = ""
	}

	reg, err := registrar.New(cfg.Registrar, registrar.NewApp(
		cfg.Name, installPath, cfg.Binary, cfg.Icon, launcher, cfg.Publisher, cfg.Console))
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	// The config travels with the launcher so the copy can find it.
	var companions []string
	if used := config.Used(); used != "" && launcher != "" {
		if abs, err := filepath.Abs(used); err == nil {
			companions = append(companions, abs)
		}
	}

	sol := solution.New(src, installPath,
		solution.WithLauncher(launcher, companions...),
		solution.WithIntegrity(cfg.Integrity),
		solution.WithLogger(logger),
		solution.WithProgress(func(p solution.Progress) {
			logger.Log(cmd.Context(), logging.LevelTrace, "copied", "file", p.Path, "done", p.Done, "total", p.Total)
		}))

	opts := []manager.Option{manager.WithLogger(logger)}
	if execFunc != nil {
		opts = append(opts, manager.WithExec(execFunc))
	}
	mgr, err := manager.New(reg, sol, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug("configured", "config", config.Used(), "source", src.Name(), "install_path", installPath)
	return &app{
		cfg:         cfg,
		installPath: installPath,
		reg:         reg,
		sol:         sol,
		mgr:         mgr,
		logger:      logger,
	}, nil
}

// printf writes user-facing output unless --quiet is set.
func printf(cmd *cobra.Command, format string, a ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}

// out returns the writer for command output.
func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
