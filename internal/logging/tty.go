package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorEnv overrides color detection: "always" or "never". Anything else
// leaves detection to the terminal.
const ColorEnv = "QUAIL_COLOR"

// IsTTY reports whether w is a terminal. Writers exposing Fd are checked.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// SupportsColor reports whether ANSI colors should be written to w.
// QUAIL_COLOR wins, then NO_COLOR and TERM=dumb disable color, and
// otherwise w must be a terminal.
func SupportsColor(w io.Writer) bool {
	return colorDecision(IsTTY(w))
}

// ConfigureColor applies the decision for w to fatih/color's global
// switch, which governs output that does not go through a Handler.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}

func colorDecision(isTTY bool) bool {
	switch os.Getenv(ColorEnv) {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
