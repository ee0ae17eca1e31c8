package welcome

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	"github.com/abhisek/curio/internal/store"
	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/layout"
	"github.com/abhisek/curio/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

// Accepted learner ages.
const (
	MinAge = 4
	MaxAge = 120
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ ? ! │  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

type savedMsg struct {
	age int
	err error
}

// ProfileSavedMsg is delivered to the screen underneath the profile editor
// once the new age is stored.
type ProfileSavedMsg struct {
	Age int
}

// WelcomeScreen asks for the learner's age. On first run it plays a splash
// animation first and then replaces itself with the screen built by next.
// As a profile editor it pops back with a ProfileSavedMsg.
type WelcomeScreen struct {
	profiles store.ProfileRepo
	next     func(age int) screen.Screen

	splash    bool
	elapsed   time.Duration
	tickCount int

	input  components.TextInput
	errMsg string
	saving bool
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates the first-run screen. next builds the screen to show once
// the age is saved.
func New(profiles store.ProfileRepo, next func(age int) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		profiles: profiles,
		next:     next,
		splash:   true,
		input:    components.NewTextInput("e.g. 10", true, 3),
	}
}

// NewProfile creates the age editor pre-filled with current.
func NewProfile(profiles store.ProfileRepo, current int) *WelcomeScreen {
	w := &WelcomeScreen{
		profiles: profiles,
		input:    components.NewTextInput("e.g. 10", true, 3),
		elapsed:  totalDur,
	}
	if current > 0 {
		w.input.SetValue(fmt.Sprint(current))
	}
	return w
}

func (w *WelcomeScreen) Title() string {
	if w.splash {
		return ""
	}
	return "Profile"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	if !w.prompting() {
		return []layout.KeyHint{{Key: "any key", Description: "Skip"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	if !w.splash {
		return w.input.Init()
	}
	return tea.Batch(w.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// prompting reports whether the age field is showing.
func (w *WelcomeScreen) prompting() bool {
	return w.elapsed >= totalDur
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case savedMsg:
		w.saving = false
		if msg.err != nil {
			w.errMsg = "Could not save your profile: " + msg.err.Error()
			return w, nil
		}
		return w, w.transition(msg.age)

	case tea.KeyPressMsg:
		// A key during the animation skips straight to the age prompt.
		if !w.prompting() {
			w.elapsed = totalDur
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	if w.saving || w.done {
		return nil
	}
	age, err := w.input.NumericValue()
	if err != nil || age < MinAge || age > MaxAge {
		w.errMsg = fmt.Sprintf("Please enter an age between %d and %d.", MinAge, MaxAge)
		return nil
	}
	w.errMsg = ""
	w.saving = true

	profiles := w.profiles
	return func() tea.Msg {
		err := profiles.Save(context.Background(), store.Profile{Age: age})
		return savedMsg{age: age, err: err}
	}
}

func (w *WelcomeScreen) transition(age int) tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	if w.next == nil {
		return func() tea.Msg {
			return router.PopScreenMsg{Result: ProfileSavedMsg{Age: age}}
		}
	}
	next := w.next(age)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.splash {
		sections = append(sections, w.renderMascot())
	}

	// Phase 3+: banner + tagline
	if w.elapsed >= phase2End {
		if w.splash {
			sections = append(sections, "", RenderBanner(width), "")
		}
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Stay curious!")
		sections = append(sections, tagline)
	}

	if w.prompting() {
		sections = append(sections, "",
			theme.Body.Render("How old are you? Questions are pitched to your age."),
			"",
			w.input.View())
		if w.errMsg != "" {
			sections = append(sections, "", theme.NoticeError.Render(w.errMsg))
		}
	} else if w.elapsed >= phase2End {
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) renderMascot() string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)
	if w.elapsed < phase1End {
		return rendered
	}

	// Phase 2+: sparkles around mascot
	sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
	s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
	s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

	lines := strings.Split(rendered, "\n")
	if len(lines) > 1 {
		lines[0] = s1 + "  " + lines[0] + "  " + s2
	}
	if len(lines) > 3 {
		lines[3] = s2 + "  " + lines[3] + "  " + s1
	}
	if len(lines) > 6 {
		lines[6] = s1 + "  " + lines[6] + "  " + s2
	}
	return strings.Join(lines, "\n")
}
