// Package theme holds Curio's palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: night sky background, warm lamp-light accents.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#2DD4BF") // Aqua
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#4ADE80") // Leaf
	Error     = lipgloss.Color("#FB7185") // Coral
	Info      = lipgloss.Color("#7DD3FC") // Sky
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#8B95A7")
	BgDark    = lipgloss.Color("#0B1020")
	BgCard    = lipgloss.Color("#161E33")
	Border    = lipgloss.Color("#2B3654")

	ArcadeYellow = lipgloss.Color("#FDE047")
	ArcadeCyan   = lipgloss.Color("#67E8F9")
	Heart        = lipgloss.Color("#F43F5E")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Option states in a multiple choice list.
var (
	Selected   = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// notice is the one-line banner shown under the header.
func notice(fg, bg lipgloss.Style) lipgloss.Style {
	return fg.Inherit(bg).Bold(true).Padding(0, 1)
}

var (
	NoticeError   = notice(lipgloss.NewStyle().Foreground(Text), lipgloss.NewStyle().Background(Error))
	NoticeSuccess = notice(lipgloss.NewStyle().Foreground(BgDark), lipgloss.NewStyle().Background(Success))
	NoticeInfo    = notice(lipgloss.NewStyle().Foreground(BgDark), lipgloss.NewStyle().Background(Info))
)
