package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oidellajulio/code-review-cli/internal/output"
)

const banner = `
██████╗ ███████╗██╗   ██╗██╗███████╗██╗    ██╗
██╔══██╗██╔════╝██║   ██║██║██╔════╝██║    ██║
██████╔╝█████╗  ██║   ██║██║█████╗  ██║ █╗ ██║
██╔══██╗██╔══╝  ╚██╗ ██╔╝██║██╔══╝  ██║███╗██║
██║  ██║███████╗ ╚████╔╝ ██║███████╗╚███╔███╔╝
╚═╝  ╚═╝╚══════╝  ╚═══╝  ╚═╝╚══════╝ ╚══╝╚══╝
`

const tagline = "Automated Code Review Bootstrap Tool (Multi-Agent & Cross-Platform)"

// bannerColors cycle per banner line.
var bannerColors = []lipgloss.Color{"12", "4", "6", "14"}

func bannerWidth() int {
	return max(lipgloss.Width(strings.Trim(banner, "\n")), len(tagline))
}

// showBanner prints the banner and tagline centered on a common width.
// Nothing is printed in JSON mode.
func showBanner(printer *output.Printer) {
	if printer.IsJSON() {
		return
	}
	color := printer.IsTTY()
	width := bannerWidth()

	for i, line := range strings.Split(strings.Trim(banner, "\n"), "\n") {
		line = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
		if color {
			line = lipgloss.NewStyle().Foreground(bannerColors[i%len(bannerColors)]).Render(line)
		}
		printer.Println(line)
	}

	line := lipgloss.PlaceHorizontal(width, lipgloss.Center, tagline)
	if color {
		line = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11")).Render(line)
	}
	printer.Println(line)
	printer.Println()
}
