// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the progress display used for a run.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeBar forces the progress bar.
	ModeBar
	// ModeLinear forces one line per event.
	ModeLinear
)

// DetectEnvironment returns the recommended output mode based on the environment.
// The bar needs a capable terminal on stderr outside CI.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || os.Getenv("TERM") == "dumb" {
		return ModeLinear
	}
	return ModeBar
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "bar", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "bar":
		return ModeBar
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
