// Package manager drives the installation lifecycle of one application:
// install, update, uninstall, version checks, and launching.
//
// Installation runs in two phases that can be resumed independently:
//
//   - Phase A ([Manager.InstallSolution]) places the payload and records
//     its version.
//   - Phase B ([Manager.InstallRegister]) registers the application with
//     the host and makes its binary executable.
//
// A caller may run Phase A on a worker goroutine and Phase B on the
// goroutine that owns the desktop shell. Hooks run synchronously on
// whichever goroutine runs the phase. When an events channel is set, each
// completed phase is also sent on it; sends block, so the caller must
// drain the channel.
//
// A Manager holds no locks. Running two managers against one install path
// at the same time is not supported.
package manager
