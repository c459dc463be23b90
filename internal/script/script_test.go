package script

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"podcaster/internal/core"
)

var discardLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func beesBrief() core.ResearchOutput {
	return core.ResearchOutput{
		Topic:          "Bees",
		ShortSummary:   "How bees talk.",
		SuggestedHooks: []string{"Bees dance to talk."},
		EpisodeOutline: core.EpisodeOutline{Segments: []core.Segment{{
			ID:      "s1",
			Title:   "The waggle dance",
			Bullets: []string{"Foragers dance to share directions.", "The angle encodes the sun's bearing."},
		}}},
		KeyFacts:              []core.KeyFact{},
		ImportantTerms:        []core.ImportantTerm{},
		ScriptNotesForSpeaker: []string{},
	}
}

func TestTemplated_BeesScenario(t *testing.T) {
	got := Templated(beesBrief())

	want := []core.DialogueLine{
		{Speaker: "Host", Text: "Bees dance to talk.", AudioEffect: "fade_in"},
		{Speaker: "Host", Text: "Foragers dance to share directions."},
		{Speaker: "Guest", Text: GuestFollowUp},
		{Speaker: "Host", Text: "The angle encodes the sun's bearing."},
		{Speaker: "Guest", Text: GuestReaction},
		{Speaker: "Host", Text: SignOff},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Templated() mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplated_EmptyBrief(t *testing.T) {
	got := Templated(core.ResearchOutput{Topic: "Volcanoes"})

	want := []core.DialogueLine{
		{Speaker: "Host", Text: "Let's talk about Volcanoes", AudioEffect: "fade_in"},
		{Speaker: "Host", Text: SignOff},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Templated() mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplated_SegmentsWithoutBulletsAndNotes(t *testing.T) {
	brief := core.ResearchOutput{
		Topic: "Tides",
		EpisodeOutline: core.EpisodeOutline{Segments: []core.Segment{
			{Title: "The Moon"},
			{Title: "Spring tides", Bullets: []string{"Only one bullet"}},
		}},
		ScriptNotesForSpeaker: []string{"Pause here", "End on a question"},
	}

	want := []core.DialogueLine{
		{Speaker: "Host", Text: "Let's talk about Tides", AudioEffect: "fade_in"},
		{Speaker: "Host", Text: "The Moon"},
		{Speaker: "Guest", Text: GuestFollowUp},
		{Speaker: "Host", Text: "Only one bullet"},
		{Speaker: "Guest", Text: GuestFollowUp},
		{Speaker: "Host", Text: "End on a question"},
		{Speaker: "Host", Text: SignOff},
	}
	if diff := cmp.Diff(want, Templated(brief)); diff != "" {
		t.Errorf("Templated() mismatch (-want +got):\n%s", diff)
	}
}

func TestConversational_ParsesDialogue(t *testing.T) {
	completer := &fakeCompleter{response: "Here is the script:\n" + `[
		{"speaker": "Host", "text": "Welcome!", "audioEffect": "fade_in"},
		{"speaker": "Guest", "text": "Glad to be here.", "audioEffect": "applause"},
		{"speaker": "Narrator", "text": "Meanwhile..."},
		{"speaker": "Bob", "text": 42},
		{"text": "No speaker given"}
	]`}
	r := NewConversational(completer, discardLog)

	got := r.Render(context.Background(), beesBrief(), core.ResearchRequest{Topic: "Bees", DurationMinutes: 10})

	want := []core.DialogueLine{
		{Speaker: "Host", Text: "Welcome!", AudioEffect: "fade_in"},
		{Speaker: "Guest", Text: "Glad to be here."},
		{Speaker: "Host", Text: "Meanwhile..."},
		{Speaker: "Guest", Text: "42"},
		{Speaker: "Host", Text: "No speaker given"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	if len(completer.prompts) != 1 {
		t.Errorf("Expected exactly one completion call, got %d", len(completer.prompts))
	}
}

func TestConversational_RepairsArray(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n[{'speaker': 'Host', 'text': 'Hi'},]\n```"}
	got := NewConversational(completer, discardLog).Render(context.Background(), beesBrief(), core.ResearchRequest{DurationMinutes: 5})

	want := []core.DialogueLine{{Speaker: "Host", Text: "Hi"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestConversational_FallsBackToTemplated(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"completion error", &fakeCompleter{err: errors.New("network down")}},
		{"no array", &fakeCompleter{response: "I cannot do that."}},
		{"unparseable array", &fakeCompleter{response: "[{speaker: Host, text: }"}},
		{"non-object lines", &fakeCompleter{response: `["just", "strings"]`}},
		{"empty array", &fakeCompleter{response: `[]`}},
	}

	brief := beesBrief()
	want := Templated(brief)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewConversational(tt.completer, discardLog).Render(context.Background(), brief, core.ResearchRequest{Topic: "Bees", DurationMinutes: 10})
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Expected templated fallback (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildDialoguePrompt(t *testing.T) {
	brief := beesBrief()
	for i := 0; i < 10; i++ {
		brief.KeyFacts = append(brief.KeyFacts, core.KeyFact{Fact: "fact-" + string(rune('a'+i))})
		brief.ImportantTerms = append(brief.ImportantTerms, core.ImportantTerm{Term: "term-" + string(rune('a'+i)), Definition: "def"})
	}

	prompt := BuildDialoguePrompt(brief, core.ResearchRequest{Topic: "Bees", DurationMinutes: 10, Style: "storytelling"})

	for _, fragment := range []string{
		`10-minute episode about "Bees"`,
		"Narrative-driven",
		"- fact-h",
		"- term-e: def",
		"- The waggle dance: Foragers dance to share directions., The angle encodes the sun's bearing.",
		"Summary: How bees talk.",
		"Generate approximately 30 dialogue exchanges",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Prompt missing %q", fragment)
		}
	}
	if strings.Contains(prompt, "fact-i") {
		t.Error("Prompt should include at most 8 facts")
	}
	if strings.Contains(prompt, "term-f") {
		t.Error("Prompt should include at most 5 terms")
	}
}

func TestTargetLines(t *testing.T) {
	tests := map[int]int{1: 15, 5: 15, 6: 18, 20: 60}
	for minutes, want := range tests {
		if got := TargetLines(minutes); got != want {
			t.Errorf("TargetLines(%d) = %d, want %d", minutes, got, want)
		}
	}
}
