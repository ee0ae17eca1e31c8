package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	explorescreen "github.com/abhisek/curio/internal/screens/explore"
	"github.com/abhisek/curio/internal/screens/playground"
	"github.com/abhisek/curio/internal/screens/welcome"
	"github.com/abhisek/curio/internal/session"
	"github.com/abhisek/curio/internal/store"
	"github.com/abhisek/curio/internal/ui/components"
)

// healthTimeout bounds the backend check made when home opens.
const healthTimeout = 3 * time.Second

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Loader   session.Loader
	Streamer explorescreen.Streamer
	Profiles store.ProfileRepo
	Session  session.Config

	// Health checks the backend. Nil skips the check.
	Health func(ctx context.Context) error

	// ServerURL is shown when the backend cannot be reached.
	ServerURL string
}

type healthMsg struct {
	err error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	age  int
	menu components.Menu

	serverDown    bool
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen for a learner of the given age.
func New(deps Deps, age int) *HomeScreen {
	h := &HomeScreen{deps: deps, age: age}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAYGROUND", Action: func() tea.Cmd {
			return push(h.practice(""))
		}},
		{Label: "EXPLORE", Action: func() tea.Cmd {
			return push(explorescreen.New(deps.Streamer, h.userContext(),
				explorescreen.WithPractice(h.practice)))
		}},
		{Label: "PROFILE", Action: func() tea.Cmd {
			return push(welcome.NewProfile(deps.Profiles, h.age))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) userContext() problemgen.UserContext {
	return problemgen.UserContext{Age: h.age}
}

// practice builds a playground, starting on topic when it is set.
func (h *HomeScreen) practice(topic string) screen.Screen {
	return playground.New(h.deps.Loader, h.deps.Session, h.userContext(), topic)
}

func (h *HomeScreen) Init() tea.Cmd {
	check := h.deps.Health
	if check == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		return healthMsg{err: check(ctx)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case healthMsg:
		h.serverDown = msg.err != nil
		h.mascotVariant = MascotIdle
		if h.serverDown {
			h.mascotVariant = MascotAlert
		}
		return h, nil

	case welcome.ProfileSavedMsg:
		h.age = msg.Age
		h.mascotVariant = MascotCelebrating
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.age, h.serverDown, cw))
	if h.serverDown {
		sections = append(sections, renderServerBanner(h.deps.ServerURL, cw))
	}
	sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, compact))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
