package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/ui/theme"
)

// A lamp, because curio is about switching lights on.
var lamp = []string{
	`    .-""-.    `,
	`   /      \   `,
	`  |  ~~~~  |  `,
	`   \  \/  /   `,
	`    |____|    `,
	`    |____|    `,
}

const tagline = "ask anything, learn everything"

// lampWidth is the art width plus a margin on each side.
const lampWidth = 18

// RenderBanner draws the lamp shading from amber at the bulb to dim at the
// base, with the tagline below. Narrow terminals get the tagline only.
func RenderBanner(width int) string {
	tag := lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Render(tagline)
	if width < lampWidth {
		return tag
	}

	shades := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		lipgloss.NewStyle().Foreground(theme.TextDim),
	}
	rows := make([]string, len(lamp))
	for i, line := range lamp {
		rows[i] = shades[min(i/2, len(shades)-1)].Render(line)
	}
	return lipgloss.JoinVertical(lipgloss.Center, strings.Join(rows, "\n"), "", tag)
}
