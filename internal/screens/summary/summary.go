package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	"github.com/abhisek/curio/internal/session"
	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/layout"
	"github.com/abhisek/curio/internal/ui/theme"
)

// SummaryScreen displays the end-of-session results.
type SummaryScreen struct {
	summary session.SessionSummary

	// restart is delivered to the screen underneath when the learner
	// chooses to play again.
	restart tea.Msg
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.BackHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. restart is handed back to the previous
// screen on Enter; it may be nil.
func New(summary session.SessionSummary, restart tea.Msg) *SummaryScreen {
	return &SummaryScreen{summary: summary, restart: restart}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.summary.Action},
		{Key: "Esc", Description: "Home"},
	}
}

// Back returns to the home screen.
func (s *SummaryScreen) Back() tea.Cmd {
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "space":
			restart := s.restart
			return s, func() tea.Msg { return router.PopScreenMsg{Result: restart} }
		case "esc":
			return s, s.Back()
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	accent := tierColor(sum.Tier)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Render(sum.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(sum.Subtitle))
	b.WriteString("\n\n")

	if sum.Message != "" {
		b.WriteString(theme.Body.Render(sum.Message))
		b.WriteString("\n\n")
	}

	stats := strings.Join([]string{
		stat("Questions", fmt.Sprint(sum.Questions)),
		stat("Accuracy", fmt.Sprintf("%d%%", sum.Accuracy)),
		stat("Best streak", fmt.Sprint(sum.BestStreak)),
		stat("Avg time", fmt.Sprintf("%ds", sum.AvgTime)),
	}, "\n")
	b.WriteString(components.ArcadeCard(stats, cw))
	b.WriteString("\n\n")

	b.WriteString(components.ArcadeButton(sum.Action, true, cw-4))

	return components.CabinetFrame(b.String(), width, height)
}

func stat(label, value string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Width(14).Render(label) +
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
}

// tierColor returns the theme color for a summary tier.
func tierColor(t session.Tier) color.Color {
	switch t {
	case session.TierOutstanding:
		return theme.ArcadeYellow
	case session.TierWellDone:
		return theme.Success
	case session.TierOutOfLives:
		return theme.Heart
	default:
		return theme.Primary
	}
}
