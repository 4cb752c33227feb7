//go:build windows

package manager

import (
	"os"
	"os/exec"

	"github.com/thoreinstein/quail/internal/errors"
)

// execProcess runs the binary as a child and exits with its code, since
// Windows cannot replace a process image.
func execProcess(binary string, argv, env []string) error {
	cmd := exec.Command(binary, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
