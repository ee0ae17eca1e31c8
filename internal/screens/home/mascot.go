package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/ui/theme"
)

// MascotVariant selects the owl's mood.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // profile just saved
	MascotAlert                     // backend unreachable
)

type mascot struct {
	art     string
	color   color.Color
	caption string
}

var mascots = map[MascotVariant]mascot{
	MascotIdle: {
		art: ` ,_,
(O,O)
(   )
-"-"-`,
		color:   theme.Primary,
		caption: "What shall we wonder about?",
	},
	MascotCelebrating: {
		art: ` ,_,
(^,^)
(   )/
-"-"-`,
		color:   theme.ArcadeYellow,
		caption: "Got it, thanks!",
	},
	MascotAlert: {
		art: ` ,_,  !
(o,O)
(   )
-"-"-`,
		color:   theme.Accent,
		caption: "Hmm, nobody's answering.",
	},
}

// RenderMascot draws the owl with its caption underneath.
func RenderMascot(v MascotVariant) string {
	m, ok := mascots[v]
	if !ok {
		m = mascots[MascotIdle]
	}
	art := lipgloss.NewStyle().Foreground(m.color).Render(m.art)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(m.caption)
	return lipgloss.JoinVertical(lipgloss.Center, art, caption)
}
