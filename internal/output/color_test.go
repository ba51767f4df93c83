package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorMode string
		isTTY     bool
		want      bool
	}{
		{name: "never disables on TTY", colorMode: "never", isTTY: true, want: false},
		{name: "always enables on non-TTY", colorMode: "always", isTTY: false, want: true},
		{name: "auto uses TTY true", colorMode: "auto", isTTY: true, want: true},
		{name: "auto uses TTY false", colorMode: "auto", isTTY: false, want: false},
		{name: "empty string defaults to auto", colorMode: "", isTTY: true, want: true},
		{name: "unknown value defaults to auto", colorMode: "bogus", isTTY: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveColorMode(tt.colorMode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) = %v, want %v", tt.colorMode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestIsInteractive_Reader(t *testing.T) {
	if IsInteractive(strings.NewReader("")) {
		t.Error("IsInteractive(strings.Reader) should return false")
	}
}

func TestNewStyles_NoColorHasNoForeground(t *testing.T) {
	styles := NewStyles(false)
	empty := lipgloss.NewStyle()
	if styles.Error.GetForeground() != empty.GetForeground() {
		t.Error("Error style should have no foreground color when color is off")
	}
	if styles.Accent.GetForeground() != empty.GetForeground() {
		t.Error("Accent style should have no foreground color when color is off")
	}
}

func TestNewStyles_ColorKeepsForeground(t *testing.T) {
	styles := NewStyles(true)
	empty := lipgloss.NewStyle()
	if styles.Error.GetForeground() == empty.GetForeground() {
		t.Error("Error style should have a foreground color when color is on")
	}
}

func TestPrinter_NeverColorNoANSI(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode("never", true))

	printer.Error(NewUserError("test error"))

	if containsANSI(buf.String()) {
		t.Errorf("--color never should produce no ANSI codes, got: %q", buf.String())
	}
}

// containsANSI checks if a string contains ANSI escape sequences.
func containsANSI(s string) bool {
	for i := range len(s) - 1 {
		if s[i] == '\033' && s[i+1] == '[' {
			return true
		}
	}
	return false
}

func TestIsInteractive_DevNull(t *testing.T) {
	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("no null device")
	}
	defer devNull.Close()

	if IsInteractive(devNull) {
		t.Error("IsInteractive(os.DevNull) should return false")
	}
}
