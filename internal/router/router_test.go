package router

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/curio/internal/screen"
)

type fakeScreen struct {
	name   string
	inits  int
	inbox  []tea.Msg
	closed bool
}

func (f *fakeScreen) Init() tea.Cmd        { f.inits++; return nil }
func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }
func (f *fakeScreen) Close()               { f.closed = true }
func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.inbox = append(f.inbox, msg)
	return f, nil
}

func screens(names ...string) []*fakeScreen {
	out := make([]*fakeScreen, len(names))
	for i, n := range names {
		out[i] = &fakeScreen{name: n}
	}
	return out
}

// path renders the stack bottom to top, e.g. "home>playground".
func path(r *Router) string {
	names := make([]string, len(r.stack))
	for i, s := range r.stack {
		names[i] = s.Title()
	}
	return strings.Join(names, ">")
}

type restartMsg struct{}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name  string
		build []string // pushed on top of "home"
		msg   tea.Msg
		want  string
	}{
		{"push", nil, PushScreenMsg{&fakeScreen{name: "explore"}}, "home>explore"},
		{"pop", []string{"playground"}, PopScreenMsg{}, "home"},
		{"pop at root", nil, PopScreenMsg{}, "home"},
		{"pop to root", []string{"playground", "summary"}, PopToRootMsg{}, "home"},
		{"replace top", []string{"playground"}, ReplaceScreenMsg{&fakeScreen{name: "explore"}}, "home>explore"},
		{"replace root", nil, ReplaceScreenMsg{&fakeScreen{name: "welcome"}}, "welcome"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&fakeScreen{name: "home"})
			for _, s := range screens(tt.build...) {
				r.Push(s)
			}
			r.Update(tt.msg)
			if got := path(r); got != tt.want {
				t.Errorf("stack = %s, want %s", got, tt.want)
			}
			if v := r.View(80, 24); v != r.Active().Title() {
				t.Errorf("View = %q, want the active screen", v)
			}
		})
	}
}

func TestInitRunsOnEntry(t *testing.T) {
	s := screens("home", "explore", "playground")
	r := New(s[0])
	r.Update(PushScreenMsg{s[1]})
	r.Update(ReplaceScreenMsg{s[2]})

	if s[0].inits != 0 || s[1].inits != 1 || s[2].inits != 1 {
		t.Errorf("inits = %d %d %d, want 0 1 1", s[0].inits, s[1].inits, s[2].inits)
	}
}

func TestLeavingClosesScreen(t *testing.T) {
	s := screens("home", "playground", "summary", "explore")
	r := New(s[0])
	r.Push(s[1])
	r.Push(s[2])

	r.Update(PopScreenMsg{})
	if !s[2].closed || s[1].closed {
		t.Fatalf("pop closed the wrong screens: summary=%v playground=%v", s[2].closed, s[1].closed)
	}

	r.Update(ReplaceScreenMsg{s[3]})
	if !s[1].closed {
		t.Error("replace must close the screen it removes")
	}

	r.Update(PopToRootMsg{})
	if !s[3].closed || s[0].closed {
		t.Errorf("pop to root: explore=%v home=%v", s[3].closed, s[0].closed)
	}
}

func TestPopResultGoesToScreenBelow(t *testing.T) {
	s := screens("playground", "summary")
	r := New(s[0])
	r.Push(s[1])

	r.Update(PopScreenMsg{Result: restartMsg{}})

	if len(s[0].inbox) != 1 {
		t.Fatalf("playground got %d messages, want 1", len(s[0].inbox))
	}
	if _, ok := s[0].inbox[0].(restartMsg); !ok {
		t.Errorf("delivered %T, want restartMsg", s[0].inbox[0])
	}

	// Nothing is left to pop, so the result is dropped.
	r.Update(PopScreenMsg{Result: restartMsg{}})
	if len(s[0].inbox) != 1 {
		t.Errorf("result delivered at the root")
	}
}

func TestOtherMessagesReachOnlyActive(t *testing.T) {
	s := screens("home", "explore")
	r := New(s[0])
	r.Push(s[1])

	r.Update(restartMsg{})

	if len(s[1].inbox) != 1 || len(s[0].inbox) != 0 {
		t.Errorf("inboxes: home=%d explore=%d", len(s[0].inbox), len(s[1].inbox))
	}
}
