package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/ui/theme"
)

type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that skips disabled items and
// stops at either end. Enter runs the selected item's Action.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	var m Menu
	m.SetItems(items)
	return m
}

// SetItems swaps the items and puts the cursor on the first enabled one.
func (m *Menu) SetItems(items []MenuItem) {
	m.Items, m.Selected = items, 0
	m.Selected = m.next(-1, 1, 0)
}

// next walks from i in direction dir and returns the first enabled index,
// or fallback when there is none.
func (m Menu) next(i, dir, fallback int) int {
	for i += dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return fallback
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "up", "k":
		m.Selected = m.next(m.Selected, -1, m.Selected)
	case "down", "j":
		m.Selected = m.next(m.Selected, 1, m.Selected)
	case "home", "g":
		m.Selected = m.next(-1, 1, m.Selected)
	case "end", "G":
		m.Selected = m.next(len(m.Items), -1, m.Selected)
	case "enter":
		if it, ok := m.current(); ok && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Labels() []string {
	labels := make([]string, 0, len(m.Items))
	for _, it := range m.Items {
		labels = append(labels, it.Label)
	}
	return labels
}

// View draws the plain list form. Home uses arcade buttons instead.
func (m Menu) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			rows[i] = dim.Render("    " + it.Label)
		case i == m.Selected:
			rows[i] = theme.Selected.Render("  ▸ " + it.Label)
		default:
			rows[i] = theme.Unselected.Render("    " + it.Label)
		}
	}
	return strings.Join(rows, "\n") + "\n"
}
