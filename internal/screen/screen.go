// Package screen defines what the router needs from a screen, plus the
// optional hooks the app shell looks for.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/curio/internal/ui/layout"
)

// Screen is one page of the app. View draws only the body; the header and
// footer belong to the shell.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// Optional hooks, checked with a type assertion on the active screen.
type (
	// KeyHintProvider replaces the default footer hints.
	KeyHintProvider interface {
		KeyHints() []layout.KeyHint
	}

	// StatusProvider fills the right side of the header (lives, streak).
	StatusProvider interface {
		Status() string
	}

	// BackHandler takes over Esc. Without it Esc pops the screen.
	BackHandler interface {
		Back() tea.Cmd
	}

	// Closer is called when the screen leaves the stack, so it can cancel
	// requests still in flight.
	Closer interface {
		Close()
	}
)
