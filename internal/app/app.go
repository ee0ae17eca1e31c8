package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	explorescreen "github.com/abhisek/curio/internal/screens/explore"
	"github.com/abhisek/curio/internal/screens/home"
	"github.com/abhisek/curio/internal/screens/playground"
	"github.com/abhisek/curio/internal/screens/welcome"
	"github.com/abhisek/curio/internal/ui/layout"
)

// Mode selects the screen opened on top of home at startup.
type Mode int

const (
	ModeHome Mode = iota
	ModePlay
	ModeExplore
)

// Options configures the TUI.
type Options struct {
	Home home.Deps

	// Age from the stored profile. Zero starts on the welcome screen.
	Age int

	Mode  Mode
	Topic string // first playground topic in ModePlay
	Query string // first question in ModeExplore
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	init   tea.Cmd
	width  int
	height int
}

// newAppModel builds the screen stack. Without a profile the learner is
// onboarded first and the start mode is ignored.
func newAppModel(opts Options) AppModel {
	if opts.Age <= 0 {
		root := welcome.New(opts.Home.Profiles, func(age int) screen.Screen {
			return home.New(opts.Home, age)
		})
		return AppModel{router: router.New(root), init: root.Init()}
	}

	root := home.New(opts.Home, opts.Age)
	r := router.New(root)
	cmds := []tea.Cmd{root.Init()}

	uc := problemgen.UserContext{Age: opts.Age}
	practice := func(topic string) screen.Screen {
		return playground.New(opts.Home.Loader, opts.Home.Session, uc, topic)
	}
	switch opts.Mode {
	case ModePlay:
		cmds = append(cmds, r.Push(practice(opts.Topic)))
	case ModeExplore:
		cmds = append(cmds, r.Push(explorescreen.New(opts.Home.Streamer, uc,
			explorescreen.WithPractice(practice),
			explorescreen.WithQuery(opts.Query))))
	}
	return AppModel{router: r, init: tea.Batch(cmds...)}
}

func (m AppModel) Init() tea.Cmd {
	return m.init
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, m.back()
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// back lets the active screen handle Esc, otherwise pops it.
func (m AppModel) back() tea.Cmd {
	if h, ok := m.router.Active().(screen.BackHandler); ok {
		return h.Back()
	}
	if m.router.Depth() > 1 {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
