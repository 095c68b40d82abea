// Package term detects whether output goes to an interactive terminal
package term

import (
	"os"

	"github.com/xyproto/env/v2"
)

// IsTerminal reports whether f refers to a terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(f.Fd())
}

// ColorEnabled resolves a colour mode (auto, always, never) for output written
// to f. Auto honours NO_COLOR and only colours terminals.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if env.Has("NO_COLOR") {
		return false
	}
	return IsTerminal(f)
}
