package output

import (
	"io"
	"os"

	"github.com/charmbracelet/x/term"
)

// ResolveColorMode determines the effective color setting from the --color
// flag and actual TTY detection. The colorMode parameter accepts "never",
// "always", or "auto":
//   - "never":  always disable colors (returns false)
//   - "always": always enable colors (returns true)
//   - "auto":   use the detected isTTY value (default behavior)
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for os.File that is a terminal.
func IsTTY(writer io.Writer) bool {
	return isTerminal(writer)
}

// IsInteractive checks if a reader is an interactive terminal.
// Interactive selection is only offered when stdin passes this check.
func IsInteractive(reader io.Reader) bool {
	return isTerminal(reader)
}

// isTerminal reports whether stream is an *os.File attached to a terminal.
func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(file.Fd())
}
