package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/curio/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

// brand is shown on the left of every header.
const brand = "✦ curio"

// hintGap separates footer hints.
const hintGap = "   "

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("Curio needs a %d×%d terminal.\nThis one is %d×%d.", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Align(lipgloss.Center).Render(body))
}

// bar draws the bordered strip used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(content)
}

// innerWidth is the text width left inside a bar.
func innerWidth(width int) int {
	return max(0, width-4)
}

// RenderHeader puts the brand on the left, title in the middle and status
// (lives, streak) on the right. Status is dropped first when space runs out.
func RenderHeader(title, status string, width int) string {
	inner := innerWidth(width)

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	if lipgloss.Width(left)+lipgloss.Width(title)+lipgloss.Width(right)+2 > inner {
		right = ""
	}
	room := max(0, inner-lipgloss.Width(left)-lipgloss.Width(right)-2)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(ansi.Truncate(title, room, "…"))

	// Center the title on the bar, not on the gap between brand and status.
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max(1, (inner-cw)/2-lw)
	rightGap := max(1, inner-lw-leftGap-cw-rw)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lists key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := innerWidth(width)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + hintGap + part
		}
		if lipgloss.Width(next) > inner {
			break
		}
		line = next
	}
	return bar(line, width)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
