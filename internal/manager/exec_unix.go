//go:build !windows

package manager

import "golang.org/x/sys/unix"

func execProcess(binary string, argv, env []string) error {
	return unix.Exec(binary, argv, env)
}
