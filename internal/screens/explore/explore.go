// Package explore is the free-form learning screen: ask anything, read a
// streamed answer and follow related topics and questions.
package explore

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/client"
	expl "github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/layout"
	"github.com/abhisek/curio/internal/ui/theme"
)

// Streamer delivers an explore answer chunk by chunk.
type Streamer interface {
	StreamExplore(ctx context.Context, query string, uc problemgen.UserContext, onChunk func(expl.StreamChunk)) error
}

type chunkMsg struct {
	id    int
	chunk expl.StreamChunk
}

type streamDoneMsg struct {
	id  int
	err error
}

// suggestion is a selectable follow-up under the latest answer.
type suggestion struct {
	text  string
	topic bool
}

type focus int

const (
	focusInput focus = iota
	focusSuggestions
)

// ExploreScreen implements screen.Screen for explore mode.
type ExploreScreen struct {
	streamer Streamer
	uc       problemgen.UserContext
	practice func(topic string) screen.Screen
	now      func() time.Time

	conv        expl.Conversation
	input       components.TextInput
	menu        components.Menu
	suggestions []suggestion
	focus       focus
	viewport    viewport.Model
	spinner     spinner.Model

	streaming bool
	streamID  int
	stream    chan tea.Msg
	cancel    context.CancelFunc
	errMsg    string

	initialQuery string
}

var _ screen.Screen = (*ExploreScreen)(nil)
var _ screen.KeyHintProvider = (*ExploreScreen)(nil)
var _ screen.BackHandler = (*ExploreScreen)(nil)
var _ screen.Closer = (*ExploreScreen)(nil)

// Option configures an ExploreScreen.
type Option func(*ExploreScreen)

// WithPractice lets the learner jump from a related topic into a practice
// session built by fn.
func WithPractice(fn func(topic string) screen.Screen) Option {
	return func(s *ExploreScreen) { s.practice = fn }
}

// WithQuery asks query as soon as the screen starts.
func WithQuery(query string) Option {
	return func(s *ExploreScreen) { s.initialQuery = query }
}

// New creates an explore screen.
func New(streamer Streamer, uc problemgen.UserContext, opts ...Option) *ExploreScreen {
	s := &ExploreScreen{
		streamer: streamer,
		uc:       uc,
		now:      time.Now,
		input:    components.NewTextInput("Ask me anything...", false, 200),
		viewport: viewport.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExploreScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init(), s.spinner.Tick}
	if s.initialQuery != "" {
		cmds = append(cmds, s.ask(s.initialQuery))
	}
	return tea.Batch(cmds...)
}

func (s *ExploreScreen) Title() string {
	return "Explore"
}

func (s *ExploreScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.focus == focusSuggestions {
		hints = append(hints, layout.KeyHint{Key: "↑↓ Enter", Description: "Follow"})
		if s.practice != nil && s.selected().topic {
			hints = append(hints, layout.KeyHint{Key: "P", Description: "Practice"})
		}
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Ask"})
	}
	if len(s.suggestions) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Switch"})
	}
	hints = append(hints, layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"})
	if s.streaming {
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Stop"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Back stops a running answer, or leaves the screen when idle.
func (s *ExploreScreen) Back() tea.Cmd {
	if s.streaming {
		s.stop()
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Close cancels any answer still streaming.
func (s *ExploreScreen) Close() {
	s.stop()
}

func (s *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chunkMsg:
		if msg.id != s.streamID {
			return s, nil
		}
		s.conv.Apply(msg.chunk)
		s.viewport.GotoBottom()
		return s, s.next()

	case streamDoneMsg:
		if msg.id != s.streamID {
			return s, nil
		}
		s.finish(msg.err)
		return s, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ExploreScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "pgup":
		s.viewport.PageUp()
		return nil
	case "pgdown":
		s.viewport.PageDown()
		return nil
	case "tab":
		s.toggleFocus()
		return nil
	}

	if s.focus == focusSuggestions {
		switch msg.String() {
		case "enter":
			return s.ask(s.selected().text)
		case "p":
			sel := s.selected()
			if s.practice != nil && sel.topic {
				next := s.practice(sel.text)
				return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
			return nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd
	}

	if msg.String() == "enter" {
		return s.ask(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *ExploreScreen) toggleFocus() {
	if s.focus == focusInput && len(s.suggestions) > 0 {
		s.focus = focusSuggestions
		s.input.Blur()
		return
	}
	s.focus = focusInput
	s.input.Focus()
}

func (s *ExploreScreen) selected() suggestion {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.suggestions) {
		return suggestion{}
	}
	return s.suggestions[s.menu.Selected]
}

// ask starts streaming an answer to query, superseding any answer still
// in progress.
func (s *ExploreScreen) ask(query string) tea.Cmd {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	s.stop()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.streamID++
	s.streaming = true
	s.errMsg = ""
	s.conv.Ask(query, s.now())
	s.setSuggestions(nil, nil)
	s.input.SetValue("")
	s.focus = focusInput
	s.input.Focus()

	id := s.streamID
	ch := make(chan tea.Msg, 16)
	s.stream = ch
	streamer, uc := s.streamer, s.uc

	go func() {
		defer close(ch)
		err := streamer.StreamExplore(ctx, query, uc, func(c expl.StreamChunk) {
			select {
			case ch <- chunkMsg{id: id, chunk: c}:
			case <-ctx.Done():
			}
		})
		select {
		case ch <- streamDoneMsg{id: id, err: err}:
		case <-ctx.Done():
		}
	}()

	return s.next()
}

// next waits for the following message on the current stream.
func (s *ExploreScreen) next() tea.Cmd {
	ch := s.stream
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (s *ExploreScreen) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.streaming {
		s.streaming = false
		s.streamID++
	}
	s.stream = nil
}

func (s *ExploreScreen) finish(err error) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.streaming = false
	s.stream = nil

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
	case errors.Is(err, client.ErrRateLimited):
		s.errMsg = "Too many requests. Take a short break and try again."
	default:
		s.errMsg = "Something went wrong while exploring. Please try again."
	}

	if latest, ok := s.conv.Latest(); ok {
		s.setSuggestions(latest.Topics, latest.Questions)
	}
}

func (s *ExploreScreen) setSuggestions(topics []expl.Topic, questions []expl.RelatedQuestion) {
	s.suggestions = s.suggestions[:0]
	items := make([]components.MenuItem, 0, len(topics)+len(questions))
	for _, t := range topics {
		s.suggestions = append(s.suggestions, suggestion{text: t.Topic, topic: true})
		items = append(items, components.MenuItem{Label: "# " + t.Topic})
	}
	for _, q := range questions {
		s.suggestions = append(s.suggestions, suggestion{text: q.Question})
		items = append(items, components.MenuItem{Label: "? " + q.Question})
	}
	s.menu.SetItems(items)
	if len(s.suggestions) == 0 {
		s.focus = focusInput
	}
}
