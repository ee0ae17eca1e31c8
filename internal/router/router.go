// Package router keeps the stack of screens the app navigates through.
// Screens never touch the stack directly; they return one of the *Msg
// types below as a command and the router applies it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/curio/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen. Result, if set, is sent to
	// the screen that becomes active, which is how a summary tells the
	// playground to restart.
	PopScreenMsg struct{ Result tea.Msg }

	// PopToRootMsg closes everything above the first screen.
	PopToRootMsg struct{}

	// ReplaceScreenMsg swaps the current screen for Screen.
	ReplaceScreenMsg struct{ Screen screen.Screen }
)

// Router is a stack of screens that is never empty.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Depth() int { return len(r.stack) }

// Active is the screen on top.
func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. It reports false, and does nothing, when only
// the root is left.
func (r *Router) Pop() bool {
	if len(r.stack) == 1 {
		return false
	}
	top := len(r.stack) - 1
	release(r.stack[top])
	r.stack[top] = nil
	r.stack = r.stack[:top]
	return true
}

func (r *Router) PopToRoot() {
	for r.Pop() {
	}
}

// Replace closes the top screen and puts s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	release(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		r.PopToRoot()
		return nil
	case PopScreenMsg:
		if !r.Pop() || msg.Result == nil {
			return nil
		}
		return r.send(msg.Result)
	}
	return r.send(msg)
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}

func (r *Router) send(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

func release(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}
