package core

import (
	"errors"
	"testing"
)

func TestResearchRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ResearchRequest
		wantErr bool
	}{
		{"valid", ResearchRequest{Topic: "Bees", DurationMinutes: 10}, false},
		{"missing topic", ResearchRequest{DurationMinutes: 10}, true},
		{"blank topic", ResearchRequest{Topic: "   ", DurationMinutes: 10}, true},
		{"zero duration", ResearchRequest{Topic: "Bees"}, true},
		{"negative duration", ResearchRequest{Topic: "Bees", DurationMinutes: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Errorf("Expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestEffectiveLanguage(t *testing.T) {
	if got := (ResearchRequest{}).EffectiveLanguage(); got != DefaultLanguage {
		t.Errorf("Expected %q, got %q", DefaultLanguage, got)
	}
	if got := (ResearchRequest{Language: "French"}).EffectiveLanguage(); got != "French" {
		t.Errorf("Expected French, got %q", got)
	}
}

func TestResearchOutputClone(t *testing.T) {
	orig := ResearchOutput{
		Topic: "Bees",
		EpisodeOutline: EpisodeOutline{Segments: []Segment{
			{ID: "s1", Bullets: []string{"a", "b"}},
		}},
		KeyFacts:              []KeyFact{{Fact: "f", Confidence: 0.5}},
		SuggestedHooks:        []string{"hook"},
		ScriptNotesForSpeaker: []string{"note"},
	}

	clone := orig.Clone()
	clone.EpisodeOutline.Segments[0].Bullets[0] = "changed"
	clone.KeyFacts[0].Fact = "changed"
	clone.SuggestedHooks[0] = "changed"

	if orig.EpisodeOutline.Segments[0].Bullets[0] != "a" {
		t.Error("Clone should not share segment bullets with the original")
	}
	if orig.KeyFacts[0].Fact != "f" {
		t.Error("Clone should not share key facts with the original")
	}
	if orig.SuggestedHooks[0] != "hook" {
		t.Error("Clone should not share hooks with the original")
	}
}

func TestResearchOutputCloneKeepsEmptySlicesNonNil(t *testing.T) {
	clone := ResearchOutput{}.Clone()
	if clone.EpisodeOutline.Segments == nil || clone.KeyFacts == nil || clone.ImportantTerms == nil ||
		clone.NotablePeopleOrEntities == nil || clone.RecommendedSources == nil ||
		clone.SuggestedHooks == nil || clone.ScriptNotesForSpeaker == nil {
		t.Error("Clone should produce non-nil slices")
	}
}
