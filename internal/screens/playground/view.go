package playground

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/session"
	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/theme"
)

func fmtStreak(streak int) string {
	if streak == 0 {
		return ""
	}
	return fmt.Sprintf("  ⚡%d", streak)
}

func (s *PlaygroundScreen) View(width, height int) string {
	snap := s.engine.Snapshot()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderTopicBar(snap))
	b.WriteString("\n")
	if s.notice != nil {
		b.WriteString(renderNotice(*s.notice, cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch snap.Phase {
	case session.PhaseNoQuestion:
		b.WriteString(components.ArcadeCard(
			theme.Body.Render("Pick any topic and Curio will quiz you on it.\n")+
				theme.Hint.Render("Questions get harder as you get them right."), cw))
	case session.PhaseLoading:
		b.WriteString(s.spinner.View() + " " +
			theme.Body.Render(fmt.Sprintf("Generating a question about %s...", snap.Topic)))
	case session.PhaseComplete:
		b.WriteString(theme.Title.Render("Session complete!"))
	default:
		b.WriteString(s.renderQuestion(snap, cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *PlaygroundScreen) renderTopicBar(snap session.Snapshot) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Topic ")
	if s.topic.Focused() {
		return label + s.topic.View()
	}
	if snap.Topic == "" {
		return label + theme.Hint.Render("press t to choose")
	}
	return label + theme.Body.Render(snap.Topic)
}

func renderNotice(n session.Notification, cw int) string {
	style := theme.NoticeInfo
	switch {
	case n.Kind.IsError():
		style = theme.NoticeError
	case n.Kind == session.NotifyComplete:
		style = theme.NoticeSuccess
	}
	return style.Width(cw).Render(n.Message)
}

func (s *PlaygroundScreen) renderQuestion(snap session.Snapshot, cw int) string {
	q := snap.Question
	panel := session.BuildPanel(snap, s.cfg.Lives)

	var b strings.Builder

	info := fmt.Sprintf("Q %d/%d   Level %d   %ds", panel.Served, panel.Limit, panel.Difficulty, panel.Elapsed)
	if q.Subtopic != "" {
		info = q.Subtopic + "   " + info
	}
	b.WriteString(theme.Hint.Render(info))
	if snap.Paused {
		b.WriteString("  " + theme.NoticeInfo.Render("PAUSED"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(s.options.View())

	if snap.Answer.ShowExplanation {
		b.WriteString("\n")
		b.WriteString(renderExplanation(snap))
		b.WriteString("\n")
	}

	switch {
	case snap.Counting:
		bar := components.NewProgressBar("Next", countdownFraction(snap), cw)
		bar.Fill = theme.Accent
		bar.Suffix = panel.Countdown + "s"
		b.WriteString("\n" + bar.View() + "\n")
	case snap.LoadingNext:
		b.WriteString("\n" + s.spinner.View() + theme.Hint.Render(" Loading next question...") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Accuracy %d%%   Streak %d (best %d)   Avg %ds",
		panel.Accuracy, panel.Streak, panel.BestStreak, panel.AvgTime)))
	b.WriteString("\n")
	b.WriteString(components.Fraction("Session", panel.Served, panel.Limit, cw).View())

	return b.String()
}

func renderExplanation(snap session.Snapshot) string {
	q := snap.Question
	var verdict string
	if snap.Answer.Correct {
		verdict = theme.Correct.Render("Correct!")
	} else {
		verdict = theme.Incorrect.Render("Not quite.")
	}

	body := verdict + "\n" + theme.Body.Render(q.Explanation.Correct)
	if q.Explanation.KeyPoint != "" {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("Key point: ") +
			theme.Body.Render(q.Explanation.KeyPoint)
	}
	return theme.Card.Render(body)
}

func countdownFraction(snap session.Snapshot) float64 {
	if snap.CountdownTotal <= 0 {
		return 0
	}
	return float64(snap.Countdown) / float64(snap.CountdownTotal)
}
