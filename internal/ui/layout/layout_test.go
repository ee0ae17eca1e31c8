package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderHeader(t *testing.T) {
	got := ansi.Strip(RenderHeader("Playground", "♥♥♥  ⚡4", 100))
	for _, want := range []string{"curio", "Playground", "♥♥♥  ⚡4"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}
}

func TestRenderHeaderDropsStatusWhenNarrow(t *testing.T) {
	got := ansi.Strip(RenderHeader(strings.Repeat("x", 60), "STATUS", 70))
	if strings.Contains(got, "STATUS") {
		t.Errorf("expected status to be dropped:\n%s", got)
	}
	if !strings.Contains(got, "curio") {
		t.Errorf("expected brand to stay:\n%s", got)
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: strings.Repeat("q", 80)},
	}
	got := ansi.Strip(RenderFooter(hints, 80))
	if !strings.Contains(got, "Enter Submit") || !strings.Contains(got, "Esc Back") {
		t.Errorf("footer missing leading hints:\n%s", got)
	}
	if strings.Contains(got, "Ctrl+C") {
		t.Errorf("expected overflowing hint to be dropped:\n%s", got)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Home", "", 80)
	footer := RenderFooter(nil, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
