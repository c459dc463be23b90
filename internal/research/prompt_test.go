package research

import (
	"strings"
	"testing"

	"podcaster/internal/core"
	"podcaster/internal/styles"
)

func TestBuildPrompt(t *testing.T) {
	req := core.ResearchRequest{Topic: "Microplastics in drinking water", DurationMinutes: 18, Style: "investigative", Language: "Spanish"}
	prompt := BuildPrompt(req)

	wantFragments := []string{
		"18-minute podcast episode",
		styles.Guide("investigative"),
		"TARGET DURATION: 18 minutes (1080 total seconds)",
		`"episodeOutline": {`,
		"1. Create 3-6 segments. Total duration should sum to ~1080 seconds.",
		"2. Segments MUST follow the investigative style guide above.",
		"3. Provide 6-12 key facts",
		"4. Provide 4-6 hooks",
		"each ≤20 words",
		"RESEARCH TOPIC: Microplastics in drinking water",
		"OUTPUT LANGUAGE: Spanish",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Prompt missing %q", fragment)
		}
	}
}

func TestBuildPrompt_DefaultsUnknownStyle(t *testing.T) {
	prompt := BuildPrompt(core.ResearchRequest{Topic: "Bees", DurationMinutes: 10, Style: "nonexistent"})

	if !strings.Contains(prompt, styles.Guide(styles.Default)) {
		t.Error("Unknown style should fall back to the conversational guide")
	}
	if !strings.Contains(prompt, "follow the conversational style guide") {
		t.Error("Unknown style id should be reported as conversational")
	}
	if !strings.Contains(prompt, "OUTPUT LANGUAGE: English") {
		t.Error("Missing language should default to English")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := core.ResearchRequest{Topic: "Bees", DurationMinutes: 10, Style: "educational"}
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Error("BuildPrompt should be deterministic")
	}
}

func TestBuildPrompt_NoFormattingArtifacts(t *testing.T) {
	prompt := BuildPrompt(core.ResearchRequest{Topic: "Bees", DurationMinutes: 10})
	for _, artifact := range []string{"%!", "(MISSING)", "(EXTRA"} {
		if strings.Contains(prompt, artifact) {
			t.Errorf("Prompt contains formatting artifact %q", artifact)
		}
	}
}

func TestBuildRepairPrompt(t *testing.T) {
	prompt := BuildRepairPrompt(core.ResearchRequest{Topic: "Bees", DurationMinutes: 10})

	for _, fragment := range []string{"ONLY valid JSON", "Topic: Bees", "Style: conversational", `"keyFacts"`} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("Repair prompt missing %q", fragment)
		}
	}
}
