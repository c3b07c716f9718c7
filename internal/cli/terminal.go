package cli

import (
	"os"

	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// UseColor reports whether styled output should be written to out. Colour
// is off when disabled by configuration, when NO_COLOR is set, or when out
// is not a terminal.
func UseColor(noColor bool, out *os.File) bool {
	if noColor || out == nil {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(int(out.Fd()))
}
