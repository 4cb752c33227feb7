// Package main is the entry point for the quail CLI.
package main

import (
	"os"

	"github.com/thoreinstein/quail/cmd/quail/commands"
	"github.com/thoreinstein/quail/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
