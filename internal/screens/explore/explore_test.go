package explore

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/curio/internal/client"
	expl "github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/router"
	"github.com/abhisek/curio/internal/screen"
)

type fakeStreamer struct {
	chunks  []expl.StreamChunk
	err     error
	block   bool
	queries []string
}

func (f *fakeStreamer) StreamExplore(ctx context.Context, query string, _ problemgen.UserContext, onChunk func(expl.StreamChunk)) error {
	f.queries = append(f.queries, query)
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	for _, c := range f.chunks {
		onChunk(c)
	}
	return f.err
}

func tidesStream() []expl.StreamChunk {
	last := expl.TextChunk("The Moon pulls on the oceans.")
	last.Topics = []expl.Topic{{Topic: "Gravity", Type: "prerequisite"}}
	last.Questions = []expl.RelatedQuestion{{Question: "Why two tides a day?", Type: "mechanism"}}
	return []expl.StreamChunk{expl.TextChunk("The Moon"), last}
}

type stubScreen struct{ topic string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.topic }
func (s *stubScreen) Title() string                           { return "Playground" }

// run feeds cmd's messages back into the screen until the chain ends.
func run(s *ExploreScreen, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = s.Update(msg)
	}
}

func askQuery(s *ExploreScreen, q string) {
	s.input.SetValue(q)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(s, cmd)
}

func TestAskStreamsAnswer(t *testing.T) {
	fs := &fakeStreamer{chunks: tidesStream()}
	s := New(fs, problemgen.UserContext{Age: 12})

	askQuery(s, "  why do tides happen  ")

	if len(fs.queries) != 1 || fs.queries[0] != "why do tides happen" {
		t.Fatalf("queries = %q", fs.queries)
	}
	if s.streaming {
		t.Error("stream should be finished")
	}
	if len(s.conv.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.conv.Messages))
	}
	latest, _ := s.conv.Latest()
	if latest.Content != "The Moon pulls on the oceans." {
		t.Errorf("content = %q", latest.Content)
	}
	if len(s.suggestions) != 2 || !s.suggestions[0].topic {
		t.Errorf("suggestions = %+v", s.suggestions)
	}
	if s.input.Value() != "" {
		t.Error("input should be cleared after asking")
	}

	view := ansi.Strip(s.View(100, 30))
	for _, want := range []string{"why do tides happen", "The Moon pulls on the oceans.", "# Gravity", "? Why two tides a day?"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEmptyQueryIgnored(t *testing.T) {
	fs := &fakeStreamer{}
	s := New(fs, problemgen.UserContext{})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("blank query should not start a stream")
	}
	if len(s.conv.Messages) != 0 {
		t.Error("blank query should not be added to the transcript")
	}
}

func TestRateLimitedStream(t *testing.T) {
	fs := &fakeStreamer{err: fmt.Errorf("%w: server returned 429", client.ErrRateLimited)}
	s := New(fs, problemgen.UserContext{})

	askQuery(s, "volcanoes")

	if !strings.Contains(s.errMsg, "Too many requests") {
		t.Errorf("errMsg = %q", s.errMsg)
	}
	if !strings.Contains(ansi.Strip(s.View(100, 30)), "(no answer)") {
		t.Error("empty answer should be marked")
	}
}

func TestFollowSuggestion(t *testing.T) {
	fs := &fakeStreamer{chunks: tidesStream()}
	s := New(fs, problemgen.UserContext{})
	askQuery(s, "tides")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.focus != focusSuggestions {
		t.Fatal("tab should move focus to suggestions")
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(s, cmd)

	if len(fs.queries) != 2 || fs.queries[1] != "Gravity" {
		t.Errorf("queries = %q", fs.queries)
	}
	if len(s.conv.Messages) != 4 {
		t.Errorf("transcript should keep history, got %d messages", len(s.conv.Messages))
	}
}

func TestPracticeTopic(t *testing.T) {
	fs := &fakeStreamer{chunks: tidesStream()}
	s := New(fs, problemgen.UserContext{}, WithPractice(func(topic string) screen.Screen {
		return &stubScreen{topic: topic}
	}))
	askQuery(s, "tides")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("expected practice command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if got := push.Screen.(*stubScreen).topic; got != "Gravity" {
		t.Errorf("practice topic = %q", got)
	}
}

func TestBackStopsStream(t *testing.T) {
	fs := &fakeStreamer{block: true}
	s := New(fs, problemgen.UserContext{})

	s.input.SetValue("black holes")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.streaming {
		t.Fatal("expected streaming")
	}

	if cmd := s.Back(); cmd != nil {
		t.Error("Back while streaming should only stop")
	}
	if s.streaming {
		t.Error("stream should be stopped")
	}
	if cmd := s.Back(); cmd == nil {
		t.Error("Back when idle should pop")
	}
}

func TestStaleChunksIgnored(t *testing.T) {
	s := New(&fakeStreamer{block: true}, problemgen.UserContext{})
	s.input.SetValue("first")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	stale := s.streamID
	s.Close()

	s.Update(chunkMsg{id: stale, chunk: expl.TextChunk("late")})
	latest, _ := s.conv.Latest()
	if latest.Content != "" {
		t.Errorf("stale chunk applied: %q", latest.Content)
	}
}
