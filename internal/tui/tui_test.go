package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"podcaster/internal/core"
)

func sampleBrief() core.ResearchOutput {
	return core.ResearchOutput{
		Topic:        "Bees",
		ShortSummary: "How bees talk.",
		EpisodeOutline: core.EpisodeOutline{Segments: []core.Segment{
			{ID: "s1", Title: "Waggle", ApproxDurationSeconds: 300, Bullets: []string{"Angles"}},
			{ID: "s2", Title: "Hives", ApproxDurationSeconds: 300},
		}},
		KeyFacts: []core.KeyFact{{Fact: "Bees see UV", Confidence: 0.9}},
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		line core.DialogueLine
		want string
	}{
		{core.DialogueLine{Speaker: "Host", Text: "Welcome", AudioEffect: "fade_in"}, "1. [Host]: Welcome (fade_in)"},
		{core.DialogueLine{Speaker: "Guest", Text: "Hi"}, "1. [Guest]: Hi"},
	}
	for _, tt := range tests {
		if got := FormatLine(1, tt.line, false); got != tt.want {
			t.Errorf("FormatLine() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatScript(t *testing.T) {
	out := FormatScript([]core.DialogueLine{
		{Speaker: "Host", Text: "One"},
		{Speaker: "Guest", Text: "Two"},
	}, false)

	for _, want := range []string{"1. [Host]: One\n", "2. [Guest]: Two\n", "Total lines: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatScript() missing %q in %q", want, out)
		}
	}
}

func TestModel_Sections(t *testing.T) {
	m := newModel(sampleBrief(), nil)

	var titles []string
	for _, s := range m.sections {
		titles = append(titles, s.title)
	}
	want := "Overview,Waggle,Hives,Key facts,Script"
	if got := strings.Join(titles, ","); got != want {
		t.Errorf("sections = %s, want %s", got, want)
	}
	if !strings.Contains(m.sections[1].body, "• Angles") {
		t.Errorf("segment body = %q", m.sections[1].body)
	}
	if m.sections[4].body != "No script generated." {
		t.Errorf("script body = %q", m.sections[4].body)
	}
}

func TestModel_Navigation(t *testing.T) {
	var m tea.Model = newModel(sampleBrief(), []core.DialogueLine{{Speaker: "Host", Text: "Hi"}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.(model).selectedIdx; got != 0 {
		t.Fatalf("selectedIdx after up at top = %d, want 0", got)
	}

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	if got := m.(model).selectedIdx; got != 4 {
		t.Fatalf("selectedIdx after many downs = %d, want 4", got)
	}
	if !strings.Contains(m.View(), "> Script") {
		t.Error("View should mark the selected section")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.(model).width; got != 120 {
		t.Errorf("width = %d, want 120", got)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if got := m.View(); got != "Quitting...\n" {
		t.Errorf("View after quit = %q", got)
	}
}
