// Package playground hosts the adaptive quiz session. The session engine
// makes every decision; this screen turns its effects into Bubble Tea
// commands and its snapshots into a view.
package playground

import (
	"slices"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
	"github.com/abhisek/curio/internal/screens/summary"
	"github.com/abhisek/curio/internal/session"
	"github.com/abhisek/curio/internal/ui/components"
	"github.com/abhisek/curio/internal/ui/layout"
	"github.com/abhisek/curio/internal/ui/theme"
)

// noticeTTL is how long a notification stays on screen.
const noticeTTL = 4 * time.Second

// PlaygroundScreen implements screen.Screen for a practice session.
type PlaygroundScreen struct {
	engine *session.Engine
	loader session.Loader
	cfg    session.Config

	topic   components.TextInput
	options components.MultiChoice
	spinner spinner.Model

	notice    *session.Notification
	noticeSeq int

	// initialTopic is submitted from Init when set.
	initialTopic string

	// lastTopic is what a restart pre-fills the topic field with.
	lastTopic string

	summaryShown bool

	// tick schedules delayed messages. Tests swap in an immediate one.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

var _ screen.Screen = (*PlaygroundScreen)(nil)
var _ screen.KeyHintProvider = (*PlaygroundScreen)(nil)
var _ screen.StatusProvider = (*PlaygroundScreen)(nil)
var _ screen.BackHandler = (*PlaygroundScreen)(nil)
var _ screen.Closer = (*PlaygroundScreen)(nil)

// New creates a playground. A non-empty topic starts loading right away.
func New(loader session.Loader, cfg session.Config, uc problemgen.UserContext, topic string, opts ...session.Option) *PlaygroundScreen {
	input := components.NewTextInput("What do you want to practice?", false, 80)
	input.SetValue(topic)

	return &PlaygroundScreen{
		engine:       session.NewEngine(cfg, uc, opts...),
		loader:       loader,
		cfg:          cfg,
		topic:        input,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent))),
		initialTopic: topic,
		lastTopic:    topic,
		tick:         tea.Tick,
	}
}

func (s *PlaygroundScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.topic.Init(), s.spinner.Tick}
	if s.initialTopic != "" {
		cmds = append(cmds, s.submit(s.initialTopic))
	}
	return tea.Batch(cmds...)
}

func (s *PlaygroundScreen) Title() string {
	return "Playground"
}

// Status shows lives and streak once a session is under way.
func (s *PlaygroundScreen) Status() string {
	snap := s.engine.Snapshot()
	if snap.Question == nil {
		return ""
	}
	return components.Hearts(snap.Progress.Lives, s.cfg.Lives) +
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(fmtStreak(snap.Stats.Streak))
}

func (s *PlaygroundScreen) KeyHints() []layout.KeyHint {
	if s.topic.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
	snap := s.engine.Snapshot()
	switch snap.Phase {
	case session.PhaseActive:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "P", Description: pauseLabel(snap.Paused)},
			{Key: "T", Description: "Topic"},
		}
	case session.PhaseReview:
		return []layout.KeyHint{
			{Key: "P", Description: pauseLabel(snap.Paused)},
			{Key: "T", Description: "Topic"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{
			{Key: "T", Description: "Topic"},
			{Key: "Esc", Description: "Home"},
		}
	}
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// Back leaves the topic field when a question is on screen, otherwise
// returns to the previous screen.
func (s *PlaygroundScreen) Back() tea.Cmd {
	if s.topic.Focused() && s.engine.Snapshot().Question != nil {
		s.topic.Blur()
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Close drops the session so an in-flight load is cancelled.
func (s *PlaygroundScreen) Close() {
	s.engine.StartNewSession()
}

func (s *PlaygroundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return s, s.apply(s.engine.Frame(msg.gen))

	case countdownMsg:
		return s, s.apply(s.engine.CountdownTick(msg.gen))

	case loadedMsg:
		return s, s.apply(s.engine.Loaded(msg.id, msg.question, msg.err))

	case noticeExpiredMsg:
		if msg.seq == s.noticeSeq {
			s.notice = nil
		}
		return s, nil

	case RestartMsg:
		return s, s.restart()

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}

	if s.topic.Focused() {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlaygroundScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.topic.Focused() {
		if msg.String() == "enter" {
			return s.submit(s.topic.Value())
		}
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return cmd
	}

	snap := s.engine.Snapshot()
	key := msg.String()
	switch key {
	case "t", "/":
		s.topic.SetValue(snap.Topic)
		return s.topic.Focus()
	case "p", "space":
		return s.apply(s.engine.TogglePause())
	case "enter":
		if snap.Phase == session.PhaseActive {
			return s.apply(s.engine.Answer(s.options.Cursor))
		}
		return nil
	case "up", "down", "k", "j":
		s.options, _ = s.options.Update(msg)
		return nil
	}

	if snap.Phase == session.PhaseActive {
		if i, ok := s.options.OptionIndex(key); ok {
			s.options.Cursor = i
			return s.apply(s.engine.Answer(i))
		}
	}
	return nil
}

// submit hands the topic to the engine. The field keeps focus when the
// engine rejects the topic.
func (s *PlaygroundScreen) submit(topic string) tea.Cmd {
	effects := s.engine.SubmitTopic(topic)
	for _, e := range effects {
		if _, ok := e.(session.StartLoad); ok {
			s.topic.Blur()
			s.lastTopic = topic
			break
		}
	}
	return s.apply(effects)
}

func (s *PlaygroundScreen) restart() tea.Cmd {
	s.apply(s.engine.StartNewSession())
	s.topic.SetValue(s.lastTopic)
	return s.topic.Focus()
}

// apply turns engine effects into commands and syncs view state with the
// engine snapshot.
func (s *PlaygroundScreen) apply(effects []session.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case session.ScheduleFrame:
			gen := e.Gen
			cmds = append(cmds, s.tick(e.After, func(time.Time) tea.Msg {
				return frameMsg{gen: gen}
			}))
		case session.ScheduleCountdown:
			gen := e.Gen
			cmds = append(cmds, s.tick(e.After, func(time.Time) tea.Msg {
				return countdownMsg{gen: gen}
			}))
		case session.StartLoad:
			cmds = append(cmds, s.load(e))
		case session.Notify:
			cmds = append(cmds, s.notify(e.Notification))
		}
	}
	cmds = append(cmds, s.sync())
	return tea.Batch(cmds...)
}

func (s *PlaygroundScreen) load(e session.StartLoad) tea.Cmd {
	loader := s.loader
	return func() tea.Msg {
		q, err := loader.Load(e.Ctx, e.Request)
		return loadedMsg{id: e.ID, question: q, err: err}
	}
}

func (s *PlaygroundScreen) notify(n session.Notification) tea.Cmd {
	s.noticeSeq++
	s.notice = &n
	seq := s.noticeSeq
	return s.tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// sync rebuilds the option list for a new question, reveals the answer
// once given and pushes the summary when the session completes.
func (s *PlaygroundScreen) sync() tea.Cmd {
	snap := s.engine.Snapshot()

	if q := snap.Question; q != nil {
		fresh := !slices.Equal(s.options.Options, q.Options) ||
			(s.options.Revealed() && !snap.Answer.Answered())
		if fresh {
			s.options = components.NewMultiChoice(q.Options)
		}
		if snap.Answer.Answered() && !s.options.Revealed() {
			s.options.Reveal(snap.Answer.Selected, q.CorrectAnswer)
		}
	}

	if snap.Phase != session.PhaseComplete {
		s.summaryShown = false
		return nil
	}
	if s.summaryShown {
		return nil
	}
	s.summaryShown = true
	next := summary.New(session.BuildSummary(snap), RestartMsg{})
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}
