package manager

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/quail/internal/errors"
	"github.com/thoreinstein/quail/internal/logging"
	"github.com/thoreinstein/quail/internal/registrar"
	"github.com/thoreinstein/quail/internal/solution"
	"github.com/thoreinstein/quail/pkg/fileutil"
)

// ArgPrefix marks launcher arguments that are never passed to the binary.
const ArgPrefix = "--quail"

// Phase names a lifecycle step reported on the events channel.
type Phase string

const (
	PhaseSolution  Phase = "solution"
	PhaseRegister  Phase = "register"
	PhaseUpdate    Phase = "update"
	PhaseUninstall Phase = "uninstall"
)

// Event reports a completed phase. Version is set for phases that place a
// payload.
type Event struct {
	Phase   Phase
	Version string
}

// ExecFunc replaces the current process with binary. It returns only on
// failure.
type ExecFunc func(binary string, argv, env []string) error

// Manager orchestrates one application's payload and host registration.
type Manager struct {
	reg          registrar.Registrar
	sol          *solution.Manager
	solutionHook func()
	registerHook func()
	events       chan<- Event
	logger       *slog.Logger
	exec         ExecFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithSolutionHook sets a function called after every successful payload
// placement (install Phase A and update).
func WithSolutionHook(fn func()) Option {
	return func(m *Manager) { m.solutionHook = fn }
}

// WithRegisterHook sets a function called after Phase B succeeds.
func WithRegisterHook(fn func()) Option {
	return func(m *Manager) { m.registerHook = fn }
}

// WithEvents sets a channel that receives an Event per completed phase.
func WithEvents(ch chan<- Event) Option {
	return func(m *Manager) { m.events = ch }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithExec replaces the function Run uses to start the binary.
func WithExec(fn ExecFunc) Option {
	return func(m *Manager) { m.exec = fn }
}

// New returns a Manager over reg and sol. Both are required; a missing one
// is errors.ErrConfiguration.
func New(reg registrar.Registrar, sol *solution.Manager, opts ...Option) (*Manager, error) {
	if reg == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "registrar is required")
	}
	if sol == nil {
		return nil, errors.Wrap(errors.ErrConfiguration, "solution manager is required")
	}
	m := &Manager{
		reg:    reg,
		sol:    sol,
		logger: logging.NewDiscard(),
		exec:   execProcess,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Registrar returns the host registrar.
func (m *Manager) Registrar() registrar.Registrar {
	return m.reg
}

// Solution returns the payload manager.
func (m *Manager) Solution() *solution.Manager {
	return m.sol
}

// Name returns the application name.
func (m *Manager) Name() string {
	return m.reg.Name()
}

// InstallSolution is Phase A: place the payload and record its version.
func (m *Manager) InstallSolution(ctx context.Context) error {
	version, err := m.sol.Install(ctx)
	if err != nil {
		return errors.Wrap(err, "installing solution")
	}
	m.logger.Info("solution installed", "name", m.reg.Name(), "version", version)
	m.finish(PhaseSolution, version, m.solutionHook)
	return nil
}

// InstallRegister is Phase B: register with the host and make the binary
// executable.
func (m *Manager) InstallRegister() error {
	if err := m.reg.Register(); err != nil {
		return errors.Wrapf(err, "registering with %s", m.reg.Name())
	}
	if err := m.ensureExecutable(); err != nil {
		return err
	}
	m.logger.Info("registered", "name", m.reg.Name())
	m.finish(PhaseRegister, "", m.registerHook)
	return nil
}

// Install runs Phase A then Phase B.
func (m *Manager) Install(ctx context.Context) error {
	if err := m.InstallSolution(ctx); err != nil {
		return err
	}
	return m.InstallRegister()
}

// Update places the current source version. Host registration is left as
// it is.
func (m *Manager) Update(ctx context.Context) error {
	version, err := m.sol.Update(ctx)
	if err != nil {
		return errors.Wrap(err, "updating solution")
	}
	m.logger.Info("solution updated", "name", m.reg.Name(), "version", version)
	m.finish(PhaseUpdate, version, m.solutionHook)
	return nil
}

// Uninstall removes the payload and the host registration. Both steps
// always run; a payload that is already gone is not an error.
func (m *Manager) Uninstall() error {
	var errs error
	if err := m.sol.Uninstall(); err != nil && !errors.Is(err, errors.ErrNotInstalled) {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "removing solution"))
	}
	if err := m.reg.Unregister(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrapf(err, "unregistering from %s", m.reg.Name()))
	}
	if errs != nil {
		return errs
	}
	m.logger.Info("uninstalled", "name", m.reg.Name())
	m.finish(PhaseUninstall, "", nil)
	return nil
}

// IsInstalled reports whether both the payload and the registration exist.
func (m *Manager) IsInstalled() bool {
	return m.sol.IsInstalled() && m.reg.IsRegistered()
}

// InstalledVersion reads the recorded version.
func (m *Manager) InstalledVersion() (string, bool, error) {
	return m.sol.InstalledVersion()
}

// AvailableVersion asks the source for its version.
func (m *Manager) AvailableVersion(ctx context.Context) (string, error) {
	return m.sol.AvailableVersion(ctx)
}

// UpdateAvailable reports whether the source offers a different version.
func (m *Manager) UpdateAvailable(ctx context.Context) (bool, error) {
	return m.sol.UpdateAvailable(ctx)
}

// Run makes the binary executable and replaces the current process with
// it. Arguments containing ArgPrefix are dropped. Run returns only on
// failure.
func (m *Manager) Run(args []string) error {
	if err := m.ensureExecutable(); err != nil {
		return err
	}
	binary := m.reg.BinaryPath()
	argv := append([]string{filepath.Base(binary)}, FilterArgs(args)...)
	m.logger.Debug("exec", "binary", binary, "args", argv[1:])
	return errors.Wrapf(m.exec(binary, argv, os.Environ()), "running %s", binary)
}

// FilterArgs drops every argument containing ArgPrefix.
func FilterArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if !strings.Contains(a, ArgPrefix) {
			out = append(out, a)
		}
	}
	return out
}

func (m *Manager) ensureExecutable() error {
	binary := m.reg.BinaryPath()
	changed, err := fileutil.EnsureExecutable(binary)
	if err != nil {
		return errors.Wrap(err, "making binary executable")
	}
	if changed {
		m.logger.Debug("set executable bit", "binary", binary)
	}
	return nil
}

func (m *Manager) finish(phase Phase, version string, hook func()) {
	if hook != nil {
		hook()
	}
	if m.events != nil {
		m.events <- Event{Phase: phase, Version: version}
	}
}
