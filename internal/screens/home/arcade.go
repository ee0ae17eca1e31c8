package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗██╗   ██╗██████╗ ██╗ ██████╗
 ██╔════╝██║   ██║██╔══██╗██║██╔═══██╗
 ██║     ██║   ██║██████╔╝██║██║   ██║
 ██║     ██║   ██║██╔══██╗██║██║   ██║
 ╚██████╗╚██████╔╝██║  ██║██║╚██████╔╝
  ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝ ╚═════╝`

const arcadeTitleCompact = "C · U · R · I · O"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar shows the learner's age and backend status.
func renderStatsBar(age int, serverDown bool, cw int) string {
	ageStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	onStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	ageText := ageStyle.Render(fmt.Sprintf("★ AGE %d", age))
	status := onStyle.Render("◆ ONLINE")
	if serverDown {
		status = offStyle.Render("◆ OFFLINE")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(ageText + "   " + status)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button, or as
// plain lines when there is no room for borders.
func renderArcadeMenu(items []string, selected int, cw int, compact bool) string {
	var lines []string
	for i, label := range items {
		if !compact {
			lines = append(lines, components.ArcadeButton(label, i == selected, buttonWidth))
			continue
		}
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderServerBanner warns that questions cannot load.
func renderServerBanner(url string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("⚠ Can't reach the Curio server at %s (start it with curio serve)", url))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
