package explore

import (
	"strings"

	"charm.land/lipgloss/v2"

	expl "github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/ui/theme"
)

func (s *ExploreScreen) View(width, height int) string {
	cw := min(width-4, 100)

	top := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Ask ") + s.input.View()
	if s.errMsg != "" {
		top += "\n" + theme.NoticeError.Width(cw).Render(s.errMsg)
	}

	var bottom string
	if len(s.suggestions) > 0 {
		heading := theme.Hint.Render("Keep exploring")
		bottom = heading + "\n" + s.menu.View()
	}

	vh := height - lipgloss.Height(top) - lipgloss.Height(bottom) - 2
	s.viewport.SetWidth(cw)
	s.viewport.SetHeight(max(vh, 3))
	atBottom := s.viewport.AtBottom()
	s.viewport.SetContent(s.renderTranscript(cw))
	if s.streaming || atBottom {
		s.viewport.GotoBottom()
	}

	body := top + "\n\n" + s.viewport.View()
	if bottom != "" {
		body += "\n" + bottom
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Width(cw).Render(body))
}

func (s *ExploreScreen) renderTranscript(cw int) string {
	if len(s.conv.Messages) == 0 {
		return theme.Hint.Render("Curious about something? Type a question and press Enter.")
	}

	text := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)
	var b strings.Builder
	for i, m := range s.conv.Messages {
		if m.Role == expl.RoleUser {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You"))
			b.WriteString("\n")
			b.WriteString(text.Render(m.Content))
			b.WriteString("\n\n")
			continue
		}

		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Curio"))
		b.WriteString("\n")
		last := i == len(s.conv.Messages)-1
		switch {
		case m.Content == "" && last && s.streaming:
			b.WriteString(s.spinner.View() + theme.Hint.Render(" thinking..."))
		case m.Content == "":
			b.WriteString(theme.Hint.Render("(no answer)"))
		default:
			b.WriteString(text.Render(m.Content))
			if last && s.streaming {
				b.WriteString(" " + s.spinner.View())
			}
		}
		b.WriteString("\n\n")
	}
	return b.String()
}
